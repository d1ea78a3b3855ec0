package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/paintfactory/backend/internal/infrastructure/auth"
	"github.com/paintfactory/backend/internal/interfaces/http/dto"
)

// AuthHandler handles token refresh. Access tokens are issued out of band;
// this endpoint lets clients rotate an expiring pair without re-issuing.
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{jwtService: jwtService}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	authGroup.POST("/refresh", h.Refresh)
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pair, err := h.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeTokenInvalid), dto.ErrCodeTokenInvalid, "Invalid refresh token")
		return
	}

	h.Success(c, pair)
}
