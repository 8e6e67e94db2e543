package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmbtravels/gmb-backend/auth"
)

func adminRouter(t *testing.T) (*gin.Engine, *auth.Gate) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gate, err := auth.NewFromPassword("admin", "s3cret", "test-secret", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	admin := router.Group("/api/admin", RequireAdmin(gate))
	admin.GET("/vehicles", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": []string{}, "identity": c.GetString(IdentityKey)})
	})
	return router, gate
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	router, _ := adminRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/vehicles", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
	assert.NotContains(t, w.Body.String(), "data")
}

func TestRequireAdminRejectsMalformedHeader(t *testing.T) {
	router, gate := adminRouter(t)
	token, err := gate.Login("admin", "s3cret")
	require.NoError(t, err)

	for _, header := range []string{"Bearer", "Bearer ", "Basic " + token, token} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/vehicles", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAdminAcceptsValidToken(t *testing.T) {
	router, gate := adminRouter(t)
	token, err := gate.Login("admin", "s3cret")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"identity":"admin"`)
}
