//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"accept-broker/internal/handler/middleware"
	"accept-broker/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.NewLogger(config.LogConfig{Level: "error", TimeZone: "UTC"}).LoggingMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.RequestIDFromContext(c.Request.Context()))
	})
	return router
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	router := newLoggedRouter(t)

	t.Run("generates an id and exposes it on the context", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses a caller-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "upstream-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("replaces an unprintable id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "bad id\twith spaces")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEqual(t, "bad id\twith spaces", w.Header().Get("X-Request-ID"))
		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})
}

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(middleware.NewContextHandler(slog.NewTextHandler(&buf, nil))).With("component", "test")

	logger.InfoContext(middleware.WithRequestID(t.Context(), "req-1"), "hello")

	assert.Contains(t, buf.String(), "request_id=req-1")
	assert.Contains(t, buf.String(), "component=test")
}
