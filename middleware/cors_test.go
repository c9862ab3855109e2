package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(env))
	r.GET("/vendor", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func corsRequest(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/vendor", nil)
	req.Header.Set("Origin", origin)
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", "GET")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCORSProductionAllowsSubdomainOrigins(t *testing.T) {
	r := corsRouter("production")

	w := corsRequest(r, http.MethodGet, "https://vendor.inletsites.dev")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://vendor.inletsites.dev", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSProductionRejectsForeignOrigins(t *testing.T) {
	r := corsRouter("production")

	w := corsRequest(r, http.MethodGet, "https://shop.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSProductionPreflight(t *testing.T) {
	r := corsRouter("production")

	w := corsRequest(r, http.MethodOptions, "https://admin.inletsites.dev")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.inletsites.dev", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestCORSDevelopmentAllowsAnyOrigin(t *testing.T) {
	r := corsRouter("development")

	w := corsRequest(r, http.MethodGet, "http://localhost:3000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
