package models

import (
	"time"

	"gorm.io/datatypes"
)

// PMSchedule is a preventive-maintenance schedule line for an asset.
// Checklist is stored as a JSON document (array of step strings).
type PMSchedule struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	AssetID         uint           `gorm:"index;not null" json:"asset_id"`
	Title           string         `gorm:"not null" json:"title"`
	Frequency       *string        `json:"frequency"`
	DueDate         *time.Time     `gorm:"type:date;index" json:"due_date"`
	Checklist       datatypes.JSON `json:"checklist"`
	Status          string         `gorm:"index;default:'SCHEDULED'" json:"status"`
	LastCompletedAt *time.Time     `json:"last_completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Asset AssetMaster `gorm:"foreignKey:AssetID" json:"-"`
}

func (PMSchedule) TableName() string {
	return "pm_schedule"
}

// PMWithAsset joins the schedule with asset master details for list views.
type PMWithAsset struct {
	PMSchedule
	AssetName *string `json:"asset_name"`
	AssetCode *string `json:"asset_code,omitempty"`
	Location  *string `json:"location,omitempty"`
	Model     *string `json:"model,omitempty"`
}
