package lookuplog

import (
	"time"
)

// Outcome values stored in LookupRecord.Outcome.
const (
	OutcomeSucceeded        = "succeeded"
	OutcomeNotFound         = "not_found"
	OutcomeTransportFailure = "transport_failure"
)

type LookupRecord struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	City         string    `json:"city" gorm:"index:idx_city_country"`
	CountryCode  string    `json:"country_code" gorm:"column:country_code;index:idx_city_country"`
	Outcome      string    `json:"outcome" gorm:"column:outcome"`
	LocationName string    `json:"location_name,omitempty" gorm:"column:location_name"`
	TemperatureC *int      `json:"temperature_c,omitempty" gorm:"column:temperature_c"`
	IconCode     string    `json:"icon_code,omitempty" gorm:"column:icon_code"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_created_at"`
}

func (LookupRecord) TableName() string {
	return "lookup_records"
}
