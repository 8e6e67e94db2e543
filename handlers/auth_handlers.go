package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gmbtravels/gmb-backend/auth"
	"github.com/gmbtravels/gmb-backend/models"
)

// AuthHandler exposes the login endpoint backing the admin UI.
type AuthHandler struct {
	Gate *auth.Gate
}

func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{Gate: gate}
}

// Login checks admin credentials and returns a bearer token. The failure
// response is identical for unknown usernames and wrong passwords.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", "username and password are required")
		return
	}

	token, err := h.Gate.Login(req.Username, req.Password)
	if err != nil {
		log.Warn().Str("username", req.Username).Str("client_ip", c.ClientIP()).Msg("failed admin login")
		fail(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		return
	}

	log.Info().Str("username", req.Username).Msg("admin logged in")
	c.JSON(http.StatusOK, models.LoginResponse{AccessToken: token, TokenType: "bearer"})
}
