package models

import (
	"time"
)

// AllowedUtilityTypes lists the meter categories accepted by the utilities API.
var AllowedUtilityTypes = []string{"POWER", "GAS", "WATER", "AIR"}

// IsValidUtilityType reports whether t is a known utility category.
func IsValidUtilityType(t string) bool {
	for _, allowed := range AllowedUtilityTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

// UtilityLog is a single meter reading.
type UtilityLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UtilityType string    `gorm:"index;not null" json:"utility_type"`
	MeterPoint  string    `gorm:"index;not null" json:"meter_point"`
	Reading     float64   `json:"reading"`
	ReadingAt   time.Time `gorm:"index" json:"reading_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (UtilityLog) TableName() string {
	return "utilities_log"
}
