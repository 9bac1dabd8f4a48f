package handlers

import (
	"net/http"
	"strconv"

	"realty-marketplace/internal/auth"
	"realty-marketplace/internal/database"
	"realty-marketplace/internal/models"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles inquiry requests
type MessageHandler struct {
	db *database.GormDB
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(db *database.GormDB) *MessageHandler {
	return &MessageHandler{db: db}
}

type messageRequest struct {
	PropertyID string `json:"property_id"`
	SeekerID   string `json:"seeker_id"`
	Body       string `json:"body"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// Create inserts an inquiry. The payload's seeker_id travels as-is
// into the policy and validation gates, which both require it to be
// the authenticated actor.
func (h *MessageHandler) Create(c *gin.Context) {
	actor := auth.CurrentActor(c)

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := models.Message{
		PropertyID: req.PropertyID,
		SeekerID:   req.SeekerID,
		Body:       req.Body,
		Email:      req.Email,
		Phone:      req.Phone,
	}

	if err := h.db.InsertMessage(actor, &message); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// List returns the actor's conversations, optionally narrowed to one
// listing.
func (h *MessageHandler) List(c *gin.Context) {
	actor := auth.CurrentActor(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.db.ListMessages(actor, c.Query("property_id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}

// Get returns one inquiry the actor is a party of.
func (h *MessageHandler) Get(c *gin.Context) {
	actor := auth.CurrentActor(c)

	message, err := h.db.GetMessage(actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

type messageStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus moves an inquiry forward: unread -> read -> responded.
func (h *MessageHandler) SetStatus(c *gin.Context) {
	actor := auth.CurrentActor(c)

	var req messageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.db.UpdateMessageStatus(actor, c.Param("id"), models.MessageStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}
