package entity

import "time"

// ActionPIN stores the bcrypt hash of the PIN gating a protected register
// action ("discount", "refund"). The engine never checks PINs itself; the
// handler layer verifies the gate before invoking refunds.
type ActionPIN struct {
	Action    string    `gorm:"size:50;primaryKey" json:"action"`
	PINHash   string    `gorm:"size:255;not null" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the ActionPIN model
func (ActionPIN) TableName() string {
	return "pins"
}
