package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RateMap maps a tax name (e.g. "GST") to a percentage rate (e.g. 0.05).
// Stored as a JSON text column so profiles and per-line snapshots share one
// representation.
type RateMap map[string]float64

func (m RateMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *RateMap) Scan(value interface{}) error {
	if value == nil {
		*m = RateMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("cannot scan %T into RateMap", value)
}

// GormDataType tells GORM to store RateMap as text.
func (RateMap) GormDataType() string {
	return "text"
}

// CentsMap maps a tax name to an accumulated amount in cents. Used for the
// per-sale tax breakdown persisted at commit time.
type CentsMap map[string]int64

func (m CentsMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *CentsMap) Scan(value interface{}) error {
	if value == nil {
		*m = CentsMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("cannot scan %T into CentsMap", value)
}

// GormDataType tells GORM to store CentsMap as text.
func (CentsMap) GormDataType() string {
	return "text"
}

// TaxProfile is a named set of percentage rates applied to a line's pre-tax
// amount, e.g. {"GST": 0.05, "PST": 0.07}. Historical sales never re-resolve
// a profile; they carry their own rate snapshot per line.
type TaxProfile struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Rates     RateMap        `gorm:"not null" json:"rates"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax profile
func (t *TaxProfile) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxProfile model
func (TaxProfile) TableName() string {
	return "tax_profiles"
}
