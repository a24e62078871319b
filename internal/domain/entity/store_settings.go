package entity

import (
	"time"

	"gorm.io/gorm"
)

// StoreSettings is the single-row settings record for the register.
type StoreSettings struct {
	ID           int            `gorm:"primaryKey" json:"id"`
	BusinessName string         `gorm:"size:255;default:'HK POS'" json:"business_name"`
	RoundCash    bool           `gorm:"default:false" json:"round_cash"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}
