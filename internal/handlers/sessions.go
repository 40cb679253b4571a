package handlers

import (
	"net/http"

	"confera/internal/models"

	"github.com/gin-gonic/gin"
)

// Sessions handlers

// CreateSession - POST /api/tracks/:id/sessions
// Только организатор события
func (h *Handlers) CreateSession(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	trackID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Sessions.Create(c.Request.Context(), caller, trackID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListSessions - GET /api/tracks/:id/sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	trackID, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Sessions.ListByTrack(c.Request.Context(), caller, trackID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSession - GET /api/sessions/:id
func (h *Handlers) GetSession(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Sessions.Get(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateSession - PUT /api/sessions/:id
// Только организатор события
func (h *Handlers) UpdateSession(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Sessions.Update(c.Request.Context(), caller, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteSession - DELETE /api/sessions/:id
// Только организатор события
func (h *Handlers) DeleteSession(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Sessions.Delete(c.Request.Context(), caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterForSession - POST /api/sessions/:id/register
func (h *Handlers) RegisterForSession(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.SessionRegistrations.Create(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
