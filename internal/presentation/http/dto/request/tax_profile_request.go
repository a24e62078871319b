package request

// TaxProfileRequest represents a tax profile create/update request. Rates
// map tax names to fractional rates, e.g. {"GST": 0.05}.
type TaxProfileRequest struct {
	Name  string             `json:"name" binding:"required,min=1,max=255"`
	Rates map[string]float64 `json:"rates" binding:"required"`
}
