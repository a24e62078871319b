package request

// PrintReceiptRequest represents a reprint request for a stored sale
type PrintReceiptRequest struct {
	ReceiptNo int64 `json:"receipt_no" binding:"required"`
}
