package response

// TenderTotal is one tender row of the daily summary.
type TenderTotal struct {
	Method string  `json:"method"`
	Label  string  `json:"label"`
	Total  float64 `json:"total"`
}

// DailySummaryResponse is the end-of-day rollup returned to the register.
// Tenders always carries a row for every payment method, zero-valued when
// that method saw no payments.
type DailySummaryResponse struct {
	Date       string        `json:"date"`
	SaleCount  int64         `json:"sale_count"`
	SubTotal   float64       `json:"subtotal"`
	TaxTotal   float64       `json:"tax_total"`
	GrandTotal float64       `json:"grand_total"`
	Tenders    []TenderTotal `json:"tenders"`
}
