package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  string  `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt. It is not a
// database entity; it is composed from stored sale data at print time, never
// by re-resolving live tax profiles.
type Receipt struct {
	Header    ReceiptHeader      `json:"header"`
	ReceiptNo int64              `json:"receipt_no"`
	Date      string             `json:"date"`
	Tenders   []string           `json:"tenders,omitempty"`
	Items     []ReceiptItem      `json:"items"`
	SubTotal  float64            `json:"subtotal"`
	Taxes     map[string]float64 `json:"taxes,omitempty"`
	TaxTotal  float64            `json:"tax_total"`
	Total     float64            `json:"total"`
	Refunded  bool               `json:"refunded,omitempty"`
}
