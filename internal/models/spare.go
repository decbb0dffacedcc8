package models

import (
	"time"
)

// SparePart is one row of the spare-parts inventory.
// stock_on_hand is only mutated through spare transactions or a direct update;
// nothing enforces a floor, so it can legitimately go negative.
type SparePart struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	PartCode    string  `gorm:"index;not null" json:"part_code"`
	PartName    string  `gorm:"not null" json:"part_name"`
	PartNo      *string `json:"part_no"`
	UOM         string  `gorm:"column:uom;default:'NOS'" json:"uom"`
	StockOnHand float64 `gorm:"default:0" json:"stock_on_hand"`
	MinLevel    float64 `gorm:"default:0" json:"min_level"`
	ReorderLevel float64 `gorm:"default:0" json:"reorder_level"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	UnitCost    *float64 `json:"unit_cost"`
	Supplier    *string  `json:"supplier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SparePart) TableName() string {
	return "spare_parts_inventory"
}

// Ledger directions for spare transactions.
const (
	TxnDirectionIssue   = "ISSUE"
	TxnDirectionReceive = "RECEIVE"
)

// SpareTxn is an append-only ledger entry for a stock movement.
// Rows are immutable once written.
type SpareTxn struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	PartID             uint      `gorm:"index;not null" json:"part_id"`
	Qty                float64   `gorm:"not null" json:"qty"`
	Direction          string    `gorm:"not null" json:"direction"`
	AssetID            *uint     `gorm:"index" json:"asset_id"`
	RelatedBreakdownID *uint     `gorm:"index" json:"related_breakdown_id"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`

	Part SparePart `gorm:"foreignKey:PartID" json:"-"`
}

func (SpareTxn) TableName() string {
	return "spare_txn"
}
