package request

// UpdateSettingsRequest represents a store settings update request
type UpdateSettingsRequest struct {
	BusinessName string `json:"business_name" binding:"required,min=1,max=255"`
	RoundCash    bool   `json:"round_cash"`
}
