package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		wantEcho bool
	}{
		{name: "missing header", header: ""},
		{name: "client id is kept", header: "plan-2026-10-19/7", wantEcho: true},
		{name: "longest accepted id", header: strings.Repeat("a", maxRequestIDLength), wantEcho: true},
		{name: "too long", header: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "whitespace", header: "two words"},
		{name: "control character", header: "id\x00"},
		{name: "non ascii", header: "적재-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.GET("/api/containers", func(c *gin.Context) {
				c.String(http.StatusOK, GetRequestID(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/containers", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			id := w.Body.String()
			assert.Equal(t, id, w.Header().Get(RequestIDHeader))
			if tt.wantEcho {
				assert.Equal(t, tt.header, id)
				return
			}
			_, err := uuid.Parse(id)
			assert.NoError(t, err, "generated id %q", id)
		})
	}
}

func TestGetRequestID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))

	c.Set(string(RequestIDKey), 17)
	assert.Empty(t, GetRequestID(c), "non-string values are ignored")
}
