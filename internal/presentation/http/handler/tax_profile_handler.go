package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/request"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/response"
)

// TaxProfileHandler handles tax profile HTTP requests
type TaxProfileHandler struct {
	taxProfileService *service.TaxProfileService
}

// NewTaxProfileHandler creates a new tax profile handler
func NewTaxProfileHandler(taxProfileService *service.TaxProfileService) *TaxProfileHandler {
	return &TaxProfileHandler{taxProfileService: taxProfileService}
}

// List handles listing tax profiles
func (h *TaxProfileHandler) List(c *gin.Context) {
	profiles, err := h.taxProfileService.ListTaxProfiles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax profiles retrieved successfully", profiles)
}

// Get handles retrieving a single tax profile
func (h *TaxProfileHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax profile ID")
		return
	}

	profile, err := h.taxProfileService.GetTaxProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax profile retrieved successfully", profile)
}

// Create handles creating a tax profile
func (h *TaxProfileHandler) Create(c *gin.Context) {
	var req request.TaxProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	profile, err := h.taxProfileService.CreateTaxProfile(c.Request.Context(), &service.TaxProfileInput{
		Name:  req.Name,
		Rates: entity.RateMap(req.Rates),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Tax profile created successfully", profile)
}

// Update handles updating a tax profile
func (h *TaxProfileHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax profile ID")
		return
	}

	var req request.TaxProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	profile, err := h.taxProfileService.UpdateTaxProfile(c.Request.Context(), id, &service.TaxProfileInput{
		Name:  req.Name,
		Rates: entity.RateMap(req.Rates),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax profile updated successfully", profile)
}

// Delete handles deleting a tax profile
func (h *TaxProfileHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax profile ID")
		return
	}

	if err := h.taxProfileService.DeleteTaxProfile(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tax profile deleted successfully", nil)
}
