package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"confera/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, err)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondError_NotFound(t *testing.T) {
	w := performError(t, domain.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decodeBody(t, w)["error"])
}

func TestRespondError_Forbidden(t *testing.T) {
	w := performError(t, domain.ErrForbidden)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRespondError_DomainKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind domain.Kind
	}{
		{"event at capacity", domain.ErrEventAtCapacity, domain.KindEventAtCapacity},
		{"duplicate registration", domain.ErrDuplicateRegistration, domain.KindDuplicateRegistration},
		{"scheduling conflict", domain.ErrSchedulingConflict, domain.KindSchedulingConflict},
		{"invalid date range", domain.ErrInvalidDateRange, domain.KindInvalidDateRange},
		{"session needs confirmed registration", domain.ErrEventRegistrationRequired, domain.KindEventRegistrationRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performError(t, tt.err)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, string(tt.kind), body["kind"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRespondError_Unknown(t *testing.T) {
	w := performError(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Внутренние детали не должны утекать клиенту
	assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
}
