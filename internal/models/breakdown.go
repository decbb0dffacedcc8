package models

import (
	"time"
)

// BreakdownLog records a breakdown or maintenance event against an asset.
// Status transitions are free-form: OPEN, ACK, IN_PROGRESS, RESOLVED, CLOSED.
type BreakdownLog struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	AssetID     uint    `gorm:"index;not null" json:"asset_id"`
	Description string  `gorm:"not null" json:"description"`
	ReportedBy  string  `gorm:"not null" json:"reported_by"`
	Status      string  `gorm:"index;default:'OPEN'" json:"status"`

	AcknowledgedBy        *string    `json:"acknowledged_by"`
	RootCause             *string    `json:"root_cause"`
	ActionTaken           *string    `json:"action_taken"`
	StartedAt             *time.Time `json:"started_at"`
	EndedAt               *time.Time `json:"ended_at"`
	BuName                *string    `json:"bu_name"`
	ProductionOpeningTime *string    `json:"production_opening_time"`
	EntryDate             *string    `json:"entry_date"`
	EntryTime             *string    `json:"entry_time"`
	EquipmentType         *string    `json:"equipment_type"`
	Note                  *string    `json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Asset AssetMaster `gorm:"foreignKey:AssetID" json:"-"`
}

func (BreakdownLog) TableName() string {
	return "breakdown_logs"
}

// BreakdownWithAsset is the list/detail projection joining the asset master.
type BreakdownWithAsset struct {
	BreakdownLog
	AssetName    *string `json:"asset_name"`
	AssetCode    *string `json:"asset_code,omitempty"`
	Location     *string `json:"location,omitempty"`
	Model        *string `json:"model,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
}
