package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shopapi/internal/logging"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   echo.HandlerFunc
		wantCode  int
		wantLevel string
	}{
		{
			name: "success logs info",
			handler: func(c echo.Context) error {
				logging.FromContext(c.Request().Context()).Info("inside")
				return c.String(http.StatusOK, "ok")
			},
			wantCode:  http.StatusOK,
			wantLevel: "INFO",
		},
		{
			name: "client error logs warn",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusNotFound, "Product not found")
			},
			wantCode:  http.StatusNotFound,
			wantLevel: "WARN",
		},
		{
			name: "server error logs error",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusInternalServerError, "boom")
			},
			wantCode:  http.StatusInternalServerError,
			wantLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := echo.New()
			e.Use(RequestLogger(logging.NewWithWriter(&buf, "debug")))
			e.GET("/api/products/:id", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
			req.Header.Set(echo.HeaderXRequestID, "rid-1")
			req.Header.Set("x-session-id", "s1")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			var last map[string]any
			require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last))
			assert.Equal(t, tt.wantLevel, last["level"])
			assert.Equal(t, "request completed", last["msg"])
			assert.Equal(t, "/api/products/:id", last["path"])
			assert.Equal(t, "rid-1", last["request_id"])
			assert.Equal(t, "s1", last["session_id"])
			assert.EqualValues(t, tt.wantCode, last["status"])
		})
	}
}
