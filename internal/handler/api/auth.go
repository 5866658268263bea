package api

import (
	"crypto/subtle"
	"net/http"

	reqdto "productpraat/internal/handler/dto/request"
	resdto "productpraat/internal/handler/dto/response"
	"productpraat/internal/handler/httperr"
	"productpraat/internal/handler/middleware"
	"productpraat/internal/pkg/config"
	"productpraat/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	tokens *jwt.Service
	cfg    config.AuthConfig
}

func NewAuthHandler(tokens *jwt.Service, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{tokens: tokens, cfg: cfg}
}

// @Summary Issue admin token
// @Description Exchange the admin secret for a short-lived bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.TokenRequest true "Token request"
// @Success 200 {object} resdto.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req reqdto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.AdminSecret), []byte(h.cfg.AdminSecret)) != 1 {
		httperr.AbortWithError(c, http.StatusUnauthorized, errInvalidSecret, "Invalid credentials", nil)
		return
	}

	token, err := h.tokens.GenerateToken(uuid.New(), middleware.RoleAdmin)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to issue token", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(h.cfg.JWTDuration.Seconds()),
	})
}
