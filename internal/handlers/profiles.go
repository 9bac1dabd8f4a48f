package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"realty-marketplace/internal/auth"
	"realty-marketplace/internal/database"
	"realty-marketplace/internal/validate"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the two profile read paths: the full self
// row and the public agent projection. They are separate endpoints
// backed by separate store queries and separate types; there is no
// parameter that turns one into the other.
type ProfileHandler struct {
	db *database.GormDB
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(db *database.GormDB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// Me returns the actor's own profile, contact fields included.
func (h *ProfileHandler) Me(c *gin.Context) {
	actor := auth.CurrentActor(c)

	profile, err := h.db.GetOwnProfile(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateMe updates the actor's own name and phone. Email and role are
// immutable after registration.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	actor := auth.CurrentActor(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := validate.ProfileContact(req.Phone); err != nil {
		respondError(c, err)
		return
	}

	profile, err := h.db.UpdateOwnProfile(actor, req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListAgents returns the public projection of agent profiles.
func (h *ProfileHandler) ListAgents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	agents, err := h.db.ListPublicAgents(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agents": agents,
		"count":  len(agents),
	})
}

// GetAgent returns the public projection of one agent.
func (h *ProfileHandler) GetAgent(c *gin.Context) {
	agent, err := h.db.GetPublicAgent(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, agent)
}
