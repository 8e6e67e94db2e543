package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gmbtravels/gmb-backend/auth"
)

// IdentityKey is the gin context key the authorized admin identity is stored
// under for downstream handlers.
const IdentityKey = "admin_identity"

// RequireAdmin aborts with 401 before the handler runs unless the request
// carries a valid bearer token. The response is the same for missing,
// malformed and expired tokens.
func RequireAdmin(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(c)
			return
		}

		identity, err := gate.Authorize(strings.TrimSpace(token))
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"error":   "unauthorized",
		"message": "valid bearer token required",
	})
}
