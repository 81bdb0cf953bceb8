package apiHttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCorsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		origins []string
		method  string
		origin  string
		status  int
		allowed string
	}{
		{name: "wildcard", origins: []string{"*"}, method: http.MethodGet, origin: "https://a.ph", status: http.StatusNoContent, allowed: "*"},
		{name: "listed", origins: []string{"https://a.ph"}, method: http.MethodGet, origin: "https://a.ph", status: http.StatusNoContent, allowed: "https://a.ph"},
		{name: "not listed", origins: []string{"https://a.ph"}, method: http.MethodGet, origin: "https://b.ph", status: http.StatusNoContent, allowed: ""},
		{name: "preflight", origins: []string{"*"}, method: http.MethodOptions, origin: "https://a.ph", status: http.StatusOK, allowed: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(corsMiddleware(tt.origins))
			router.Any("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			req := httptest.NewRequest(tt.method, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.allowed, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
