package request

// CheckPINRequest represents a PIN verification request
type CheckPINRequest struct {
	Action string `json:"action" binding:"required"`
	PIN    string `json:"pin" binding:"required"`
}

// SetPINRequest represents a PIN change request
type SetPINRequest struct {
	Action     string `json:"action" binding:"required"`
	CurrentPIN string `json:"current_pin"`
	NewPIN     string `json:"new_pin" binding:"required,min=4"`
}
