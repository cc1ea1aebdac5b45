package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown", "k", "v")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "v", entry["k"])
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, "info")

	e := echo.New()
	e.Use(RequestLogger(base))
	e.GET("/ping", func(c echo.Context) error {
		FromContext(c.Request().Context()).Info("inside_handler")
		return c.String(http.StatusOK, "pong")
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	t.Run("success carries request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(echo.HeaderXRequestID, "rid-1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)

		var inner, done map[string]any
		require.NoError(t, json.Unmarshal(lines[0], &inner))
		require.NoError(t, json.Unmarshal(lines[1], &done))
		assert.Equal(t, "rid-1", inner["request_id"])
		assert.Equal(t, "request completed", done["msg"])
		assert.EqualValues(t, http.StatusOK, done["status"])
	})

	t.Run("handler error is rendered once", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		var done map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &done))
		assert.Equal(t, "WARN", done["level"])
	})
}
