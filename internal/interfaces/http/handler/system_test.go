package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grocery/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveSystem(t *testing.T, h *SystemHandler, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSystemHandler_Health(t *testing.T) {
	h := NewSystemHandler("grocery", "test", map[string]HealthCheck{
		"database": func(context.Context) error { return errors.New("down") },
	})

	w, resp := serveSystem(t, h, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Empty(t, resp.Components)
	_, err := time.Parse(time.RFC3339, resp.Time)
	assert.NoError(t, err)
}

func TestSystemHandler_Ready(t *testing.T) {
	ok := func(context.Context) error { return nil }

	t.Run("all dependencies up", func(t *testing.T) {
		h := NewSystemHandler("grocery", "test", map[string]HealthCheck{"database": ok, "redis": ok})

		w, resp := serveSystem(t, h, "/ready")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, map[string]string{"database": "ok", "redis": "ok"}, resp.Components)
	})

	t.Run("one dependency down", func(t *testing.T) {
		h := NewSystemHandler("grocery", "test", map[string]HealthCheck{
			"database": ok,
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})

		w, resp := serveSystem(t, h, "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "error", resp.Components["redis"])
		assert.Equal(t, "ok", resp.Components["database"])
	})

	t.Run("checks get a deadline", func(t *testing.T) {
		h := NewSystemHandler("grocery", "test", map[string]HealthCheck{
			"database": func(ctx context.Context) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return nil
			},
		})

		w, _ := serveSystem(t, h, "/ready")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler("Grocery Backend API", "1.2.3", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/system/info", nil)

	h.GetSystemInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "Grocery Backend API", data["name"])
	assert.Equal(t, "1.2.3", data["version"])
	assert.NotEmpty(t, data["go_version"])
	assert.NotEmpty(t, data["uptime"])
}
