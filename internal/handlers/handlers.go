package handlers

import (
	"net/http"
	"strconv"

	"confera/internal/cache"
	"confera/internal/domain"
	"confera/internal/middleware"
	"confera/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services     *service.Services
	valkeyClient *cache.ValkeyClient
}

func NewHandlers(services *service.Services, valkeyClient *cache.ValkeyClient) *Handlers {
	return &Handlers{
		services:     services,
		valkeyClient: valkeyClient,
	}
}

// identity pulls the authenticated caller set by the BasicAuth
// middleware. Aborts with 401 when the route was somehow reached
// without authentication.
func identity(c *gin.Context) (domain.Identity, bool) {
	id, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Identity{}, false
	}
	return id, true
}

// pathID parses a numeric path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
