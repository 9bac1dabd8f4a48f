package handlers

import (
	"errors"
	"net/http"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/auth"
	"realty-marketplace/internal/database"

	"github.com/gin-gonic/gin"
)

// SavedHandler handles bookmark requests
type SavedHandler struct {
	db *database.GormDB
}

// NewSavedHandler creates a new saved-properties handler
func NewSavedHandler(db *database.GormDB) *SavedHandler {
	return &SavedHandler{db: db}
}

// List returns the actor's bookmarked listings.
func (h *SavedHandler) List(c *gin.Context) {
	actor := auth.CurrentActor(c)

	properties, err := h.db.ListSavedProperties(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// Save bookmarks a listing. Saving twice, or losing a race with a
// concurrent save, reports success.
func (h *SavedHandler) Save(c *gin.Context) {
	actor := auth.CurrentActor(c)

	saved, err := h.db.SaveProperty(actor, c.Param("id"))
	if errors.Is(err, apperr.ErrAlreadySaved) {
		c.JSON(http.StatusOK, gin.H{"status": "already_saved"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// Unsave removes the actor's bookmark.
func (h *SavedHandler) Unsave(c *gin.Context) {
	actor := auth.CurrentActor(c)

	if err := h.db.DeleteSaved(actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
