package enum

// PaymentMethod identifies how a sale was tendered. Stored as text so the
// payments table and the daily summary query stay readable.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCardExternal PaymentMethod = "card_external"
	MethodETransfer    PaymentMethod = "etransfer"
)

// AllPaymentMethods lists every tender method in display order. The daily
// summary reports all of them even when a method saw no payments that day.
var AllPaymentMethods = []PaymentMethod{MethodCash, MethodCardExternal, MethodETransfer}

// IsValid reports whether the method is one of the known tender methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCardExternal, MethodETransfer:
		return true
	}
	return false
}

// Label returns the human-facing tender name used on receipts and summaries.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodCash:
		return "Cash"
	case MethodCardExternal:
		return "Card"
	case MethodETransfer:
		return "E-Transfer"
	}
	return string(m)
}
