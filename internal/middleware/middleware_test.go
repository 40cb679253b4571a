package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"confera/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestCORS_SetsHeaders(t *testing.T) {
	router := newTestRouter()
	router.Use(CORS())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_Preflight(t *testing.T) {
	router := newTestRouter()
	router.Use(CORS())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	router.ServeHTTP(w, req)

	// Preflight завершается до роутинга
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBasicAuth_MissingCredentials(t *testing.T) {
	router := newTestRouter()
	router.Use(BasicAuth(nil, nil))
	router.GET("/secure", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
}

func TestIdentityContext_RoundTrip(t *testing.T) {
	id := domain.Identity{UserID: 42, IsStaff: true}

	ctx := ContextWithIdentity(context.Background(), id)
	got, ok := IdentityFromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestIdentityContext_Missing(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)
}

func TestRecovery_ReturnsInternalError(t *testing.T) {
	router := newTestRouter()
	router.Use(Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}
