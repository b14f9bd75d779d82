package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestInitWithWriter_ServiceAndLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	InitWithWriter("storefront-service", "warn", buf)

	Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	Warn().Str("key", "catalog:categories:all").Msg("visible")
	entry := lastEntry(t, buf)
	assert.Equal(t, "storefront-service", entry["service"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "visible", entry["message"])
}

func TestInitWithWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	buf := new(bytes.Buffer)
	InitWithWriter("storefront-service", "chatty", buf)

	Debug().Msg("hidden")
	Info().Msg("shown")

	assert.Equal(t, "shown", lastEntry(t, buf)["message"])
}

func TestGinLoggerMiddleware_RequestID(t *testing.T) {
	buf := new(bytes.Buffer)
	InitWithWriter("storefront-service", "debug", buf)

	router := gin.New()
	router.Use(GinLoggerMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("propagates incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-123", w.Body.String())
		entry := lastEntry(t, buf)
		assert.Equal(t, "req-123", entry["request_id"])
		assert.Equal(t, float64(http.StatusOK), entry["status"])
	})

	t.Run("generates id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}
