package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet_tracker/internal/app/port"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler exposes login state. The bearer token itself never leaves the service.
type AuthHandler struct {
	authService port.AuthService
}

func NewAuthHandler(as port.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errValidation("email and password are required"))
		return
	}
	if err := h.authService.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.authService.Logout(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

func (h *AuthHandler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": h.authService.IsAuthenticated()})
}
