package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/request"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/response"
)

// AuthHandler handles PIN verification HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CheckPIN handles POST /auth/pin/check
func (h *AuthHandler) CheckPIN(c *gin.Context) {
	var req request.CheckPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.CheckPIN(c.Request.Context(), req.Action, req.PIN); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "PIN verified", gin.H{"action": req.Action})
}

// SetPIN handles POST /auth/pin
func (h *AuthHandler) SetPIN(c *gin.Context) {
	var req request.SetPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.SetPIN(c.Request.Context(), req.Action, req.CurrentPIN, req.NewPIN); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "PIN updated", gin.H{"action": req.Action})
}
