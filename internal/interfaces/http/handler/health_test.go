package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping() error { return p.err }

func serveHealth(h *HealthHandler) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/health", h.Health)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	return w
}

func TestHealthHandler(t *testing.T) {
	w := serveHealth(NewHealthHandler(fakePinger{}, "1.2.3"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
	assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)

	w = serveHealth(NewHealthHandler(fakePinger{err: errors.New("down")}, "1.2.3"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)

	w = serveHealth(NewHealthHandler(nil, "dev"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "database")
}
