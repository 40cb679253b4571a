package handlers

import (
	"net/http"

	"confera/internal/models"

	"github.com/gin-gonic/gin"
)

// Session registrations handlers

// CreateSessionRegistration - POST /api/session-registrations
// Требуется подтвержденная регистрация на событие сессии
func (h *Handlers) CreateSessionRegistration(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	var req models.CreateSessionRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.SessionRegistrations.Create(c.Request.Context(), caller, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListSessionRegistrations - GET /api/session-registrations
func (h *Handlers) ListSessionRegistrations(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	response, err := h.services.SessionRegistrations.List(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSessionRegistration - GET /api/session-registrations/:id
func (h *Handlers) GetSessionRegistration(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.SessionRegistrations.Get(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelSessionRegistration - POST /api/session-registrations/:id/cancel
// Участник или организатор; запись удаляется физически
func (h *Handlers) CancelSessionRegistration(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.SessionRegistrations.Cancel(c.Request.Context(), caller, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
