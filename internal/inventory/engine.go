package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/plantops/maintgo/internal/models"
	"gorm.io/gorm"
)

// ErrMissingField is returned when the request lacks a required field.
var ErrMissingField = errors.New("asset, description, and reporter are required")

// PartUse is one (part, quantity) consumption pair.
type PartUse struct {
	PartID uint    `json:"part_id"`
	Qty    float64 `json:"qty"`
}

// Request describes a maintenance event and the spares it consumed.
type Request struct {
	AssetID     uint
	Description string
	ReportedBy  string
	RootCause   *string
	ActionTaken *string
	PartsUsed   []PartUse
}

// Engine applies maintenance events atomically: the log row, every stock
// decrement and every ledger entry commit together or not at all.
type Engine struct {
	db *gorm.DB
}

// NewEngine returns an engine bound to the given database handle.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// CreateMaintenanceLog inserts a RESOLVED breakdown log, then for each part
// used decrements stock_on_hand and appends an ISSUE ledger entry referencing
// the new log. Any failure rolls the whole operation back; a ledger entry
// without its deduction (or vice versa) would corrupt the audit trail.
//
// The decrement is unconditional: stock is allowed to go negative.
func (e *Engine) CreateMaintenanceLog(req Request) (uint, error) {
	if req.AssetID == 0 || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.ReportedBy) == "" {
		return 0, ErrMissingField
	}

	var logID uint
	err := e.db.Transaction(func(tx *gorm.DB) error {
		entry := models.BreakdownLog{
			AssetID:     req.AssetID,
			Description: req.Description,
			ReportedBy:  req.ReportedBy,
			RootCause:   req.RootCause,
			ActionTaken: req.ActionTaken,
			Status:      "RESOLVED",
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create maintenance log: %w", err)
		}
		logID = entry.ID

		for _, part := range req.PartsUsed {
			res := tx.Model(&models.SparePart{}).
				Where("id = ?", part.PartID).
				Updates(map[string]interface{}{
					"stock_on_hand": gorm.Expr("stock_on_hand - ?", part.Qty),
					"updated_at":    time.Now().UTC(),
				})
			if res.Error != nil {
				return fmt.Errorf("deduct stock for part %d: %w", part.PartID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("spare part %d not found", part.PartID)
			}

			txn := models.SpareTxn{
				PartID:             part.PartID,
				Qty:                part.Qty,
				Direction:          models.TxnDirectionIssue,
				AssetID:            &entry.AssetID,
				RelatedBreakdownID: &entry.ID,
				CreatedBy:          req.ReportedBy,
			}
			if err := tx.Create(&txn).Error; err != nil {
				return fmt.Errorf("record ledger entry for part %d: %w", part.PartID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return logID, nil
}
