package handlers

import (
	"net/http"
	"strconv"

	"realty-marketplace/internal/auth"
	"realty-marketplace/internal/database"
	"realty-marketplace/internal/models"
	"realty-marketplace/internal/validate"

	"github.com/gin-gonic/gin"
)

// PropertyHandler handles listing browse and agent CRUD requests
type PropertyHandler struct {
	db *database.GormDB
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(db *database.GormDB) *PropertyHandler {
	return &PropertyHandler{db: db}
}

// List returns the listings visible to the requester. Runs behind
// OptionalAuth so a signed-in agent also sees their own drafts.
func (h *PropertyHandler) List(c *gin.Context) {
	actor := auth.CurrentActor(c)

	filters := database.PropertyFilters{
		City:   c.Query("city"),
		Region: c.Query("region"),
		SortBy: c.DefaultQuery("sort", "created_at"),
	}

	if forRentStr := c.Query("for_rent"); forRentStr != "" {
		forRent := forRentStr == "true" || forRentStr == "1"
		filters.ForRent = &forRent
	}

	// Price range
	if minPriceStr := c.Query("min_price"); minPriceStr != "" {
		if minPrice, parseErr := strconv.ParseInt(minPriceStr, 10, 64); parseErr == nil {
			filters.MinPrice = &minPrice
		}
	}
	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		if maxPrice, parseErr := strconv.ParseInt(maxPriceStr, 10, 64); parseErr == nil {
			filters.MaxPrice = &maxPrice
		}
	}

	if minBedsStr := c.Query("min_beds"); minBedsStr != "" {
		if minBeds, parseErr := strconv.Atoi(minBedsStr); parseErr == nil && minBeds > 0 {
			filters.MinBeds = minBeds
		}
	}
	if minBathsStr := c.Query("min_baths"); minBathsStr != "" {
		if minBaths, parseErr := strconv.Atoi(minBathsStr); parseErr == nil && minBaths > 0 {
			filters.MinBaths = minBaths
		}
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, parseErr := strconv.Atoi(limitStr); parseErr == nil && limit > 0 {
			filters.Limit = limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, parseErr := strconv.Atoi(offsetStr); parseErr == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	properties, total, err := h.db.ListProperties(actor, filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"total":      total,
		"count":      len(properties),
	})
}

// Get returns one listing the requester may see.
func (h *PropertyHandler) Get(c *gin.Context) {
	actor := auth.CurrentActor(c)

	property, err := h.db.GetProperty(actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	photos, err := h.db.ListPhotos(actor, property.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property": property,
		"photos":   photos,
	})
}

// ListOwn returns every listing the agent owns, drafts included.
func (h *PropertyHandler) ListOwn(c *gin.Context) {
	actor := auth.CurrentActor(c)

	properties, err := h.db.ListOwnProperties(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

type propertyRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Currency    string   `json:"currency"`
	ForRent     bool     `json:"for_rent"`
	Beds        int      `json:"beds"`
	Baths       int      `json:"baths"`
	AreaSqft    *int     `json:"area_sqft"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (r *propertyRequest) toModel() models.Property {
	return models.Property{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		ForRent:     r.ForRent,
		Beds:        r.Beds,
		Baths:       r.Baths,
		AreaSqft:    r.AreaSqft,
		Address:     r.Address,
		City:        r.City,
		Region:      r.Region,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

// Create adds a draft listing owned by the requesting agent.
func (h *PropertyHandler) Create(c *gin.Context) {
	actor := auth.CurrentActor(c)

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := req.toModel()
	if err := validate.PropertyPayload(&property); err != nil {
		respondError(c, err)
		return
	}

	if err := h.db.CreateProperty(actor, &property); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// Update edits an owned listing. Status changes go through SetStatus.
func (h *PropertyHandler) Update(c *gin.Context) {
	actor := auth.CurrentActor(c)

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property := req.toModel()
	property.ID = c.Param("id")
	if err := validate.PropertyPayload(&property); err != nil {
		respondError(c, err)
		return
	}

	if err := h.db.UpdateProperty(actor, &property); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetStatus moves a listing between draft, published, and archived.
func (h *PropertyHandler) SetStatus(c *gin.Context) {
	actor := auth.CurrentActor(c)

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.db.SetPropertyStatus(actor, c.Param("id"), models.PropertyStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Delete removes an owned listing and everything attached to it.
func (h *PropertyHandler) Delete(c *gin.Context) {
	actor := auth.CurrentActor(c)

	if err := h.db.DeleteProperty(actor, c.Param("id"), models.DeleteReasonOwner); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
