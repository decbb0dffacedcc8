package models

import (
	"time"
)

// Asset status values accepted by the API and the import pipeline.
const (
	AssetStatusActive   = "ACTIVE"
	AssetStatusUnderAMC = "UNDER_AMC"
	AssetStatusInactive = "INACTIVE"
	AssetStatusDisposed = "DISPOSED"
)

// AllowedAssetStatuses lists every valid assets_master.status value.
var AllowedAssetStatuses = []string{
	AssetStatusActive,
	AssetStatusUnderAMC,
	AssetStatusInactive,
	AssetStatusDisposed,
}

// IsValidAssetStatus reports whether s (already upper-cased) is a known status.
func IsValidAssetStatus(s string) bool {
	for _, allowed := range AllowedAssetStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// AssetMaster is the master record for a maintainable asset.
// Optional columns are pointers so unset fields persist as NULL.
type AssetMaster struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssetCode    string     `gorm:"uniqueIndex;not null" json:"asset_code"`
	AssetName    string     `gorm:"not null" json:"asset_name"`
	Location     *string    `json:"location"`
	Category     *string    `json:"category"`
	Manufacturer *string    `json:"manufacturer"`
	Model        *string    `json:"model"`
	SerialNumber *string    `json:"serial_number"`
	InstallDate  *time.Time `gorm:"type:date" json:"install_date"`
	Status       string     `gorm:"index;default:'ACTIVE'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AssetMaster) TableName() string {
	return "assets_master"
}

// AssetQR links a printable QR payload to an asset.
type AssetQR struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AssetID   uint      `gorm:"index;not null" json:"asset_id"`
	QRPayload string    `gorm:"column:qr_payload;uniqueIndex;not null" json:"qr_payload"`
	CreatedAt time.Time `json:"created_at"`

	Asset AssetMaster `gorm:"foreignKey:AssetID" json:"-"`
}

func (AssetQR) TableName() string {
	return "asset_qr"
}
