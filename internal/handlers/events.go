package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"confera/internal/models"

	"github.com/gin-gonic/gin"
)

// Events handlers

// CreateEvent - POST /api/events
// Любой аутентифицированный пользователь становится организатором
// созданного события
func (h *Handlers) CreateEvent(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Events.Create(c.Request.Context(), caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateEventsCache(c)

	c.JSON(http.StatusCreated, response)
}

// ListEvents - GET /api/events
// Получить список событий
func (h *Handlers) ListEvents(c *gin.Context) {
	query := c.Query("query")
	venue := c.Query("venue")
	date := c.Query("date")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}

	if pageSize < 1 || pageSize > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 100"})
		return
	}

	// Only unfiltered pages are cached
	shouldCache := query == "" && venue == "" && date == ""

	if shouldCache && h.valkeyClient != nil {
		rawJSON, err := h.valkeyClient.GetEventsListRaw(c.Request.Context(), page, pageSize)
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	response, err := h.services.Events.List(c.Request.Context(), query, venue, date, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	if shouldCache && h.valkeyClient != nil {
		h.valkeyClient.SetEventsList(c.Request.Context(), page, pageSize, response)
	}

	c.JSON(http.StatusOK, response)
}

// GetEvent - GET /api/events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Events.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateEvent - PUT /api/events/:id
// Только организатор
func (h *Handlers) UpdateEvent(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Events.Update(c.Request.Context(), caller, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateEventsCache(c)

	c.JSON(http.StatusOK, response)
}

// DeleteEvent - DELETE /api/events/:id
// Только организатор; каскадно удаляет треки, сессии и регистрации
func (h *Handlers) DeleteEvent(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Events.Delete(c.Request.Context(), caller, id); err != nil {
		respondError(c, err)
		return
	}

	h.invalidateEventsCache(c)

	c.Status(http.StatusNoContent)
}

// RegisterForEvent - POST /api/events/:id/register
func (h *Handlers) RegisterForEvent(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	response, err := h.services.Registrations.Create(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *Handlers) invalidateEventsCache(c *gin.Context) {
	if h.valkeyClient == nil {
		return
	}
	h.valkeyClient.InvalidateEventsLists(c.Request.Context())
	slog.Debug("Invalidated events list cache")
}
