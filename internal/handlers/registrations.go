package handlers

import (
	"net/http"
	"strconv"

	"confera/internal/models"

	"github.com/gin-gonic/gin"
)

// Registrations handlers

// CreateRegistration - POST /api/registrations
// Зарегистрироваться на событие; регистрация создается в статусе pending
func (h *Handlers) CreateRegistration(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	var req models.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Registrations.Create(c.Request.Context(), caller, req.EventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListRegistrations - GET /api/registrations
// Staff видит все, остальные только свои и регистрации своих событий
func (h *Handlers) ListRegistrations(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	status := c.Query("status")
	eventID, _ := strconv.ParseInt(c.Query("event"), 10, 64)

	response, err := h.services.Registrations.List(c.Request.Context(), caller, status, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRegistration - GET /api/registrations/:id
func (h *Handlers) GetRegistration(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Registrations.Get(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateRegistration - PATCH /api/registrations/:id
// Обновить заметки регистрации
func (h *Handlers) UpdateRegistration(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Registrations.UpdateNotes(c.Request.Context(), caller, id, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ApproveRegistration - POST /api/registrations/:id/approve
// Только организатор события; проверка вместимости под блокировкой
func (h *Handlers) ApproveRegistration(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Registrations.Approve(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelRegistration - POST /api/registrations/:id/cancel
// Участник или организатор; повторная отмена идемпотентна
func (h *Handlers) CancelRegistration(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Registrations.Cancel(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
