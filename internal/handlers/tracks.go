package handlers

import (
	"net/http"

	"confera/internal/models"

	"github.com/gin-gonic/gin"
)

// Tracks handlers

// CreateTrack - POST /api/events/:id/tracks
// Только организатор события
func (h *Handlers) CreateTrack(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Tracks.Create(c.Request.Context(), caller, eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListTracks - GET /api/events/:id/tracks
func (h *Handlers) ListTracks(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Tracks.ListByEvent(c.Request.Context(), caller, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTrack - GET /api/tracks/:id
func (h *Handlers) GetTrack(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Tracks.Get(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateTrack - PUT /api/tracks/:id
// Только организатор события
func (h *Handlers) UpdateTrack(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Tracks.Update(c.Request.Context(), caller, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteTrack - DELETE /api/tracks/:id
// Только организатор события; каскадно удаляет сессии
func (h *Handlers) DeleteTrack(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Tracks.Delete(c.Request.Context(), caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
