package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the lifecycle of a sale. A sale is created as Paid
// and transitions to Refunded at most once; it is never mutated otherwise.
type SaleStatus int

const (
	SaleStatusPaid     SaleStatus = 0
	SaleStatusRefunded SaleStatus = 1
)

func (s SaleStatus) String() string {
	names := [...]string{"Paid", "Refunded"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Paid"
	}
	return names[s]
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Paid":
		*s = SaleStatusPaid
	case "Refunded":
		*s = SaleStatusRefunded
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusPaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
