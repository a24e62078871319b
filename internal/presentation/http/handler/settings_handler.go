package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/request"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles store settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles retrieving store settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles updating store settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		BusinessName: req.BusinessName,
		RoundCash:    req.RoundCash,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", settings)
}
