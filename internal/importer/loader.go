package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/plantops/maintgo/internal/models"
	"gorm.io/gorm"
)

// Loader persists parsed rows into assets_master.
type Loader struct {
	db *gorm.DB
}

// NewLoader returns a loader bound to the given database handle.
func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// Result is the outcome of one bulk load: how many rows went in and what
// went wrong with the rest, in input order.
type Result struct {
	Total  int
	Count  int
	Errors []string
}

// Failed reports overall failure: at least one error and nothing persisted.
func (r *Result) Failed() bool {
	return r.Count == 0 && len(r.Errors) > 0
}

// Load inserts every row inside one transaction with per-row savepoints:
// a failed insert rolls back that row alone and the batch carries on, so the
// outcome is partial success rather than all-or-nothing. The loader may be
// called without prior validation (the JSON bulk path), so it re-normalizes
// column names and re-checks required fields and status itself.
func (l *Loader) Load(rows []Row) (*Result, error) {
	result := &Result{Total: len(rows)}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		for i, raw := range rows {
			row := normalizeRow(raw)
			rowNum := displayRow(i)

			assetCode := strings.TrimSpace(row["asset_code"])
			assetName := strings.TrimSpace(row["asset_name"])
			if assetCode == "" || assetName == "" {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Row %d: Missing required fields (asset_code and asset_name)", rowNum))
				continue
			}

			status := models.AssetStatusActive
			if s := strings.TrimSpace(row["status"]); s != "" {
				status = strings.ToUpper(s)
				if !models.IsValidAssetStatus(status) {
					result.Errors = append(result.Errors,
						fmt.Sprintf("Row %d: Invalid status value '%s'", rowNum, s))
					continue
				}
			}

			asset := models.AssetMaster{
				AssetCode:    assetCode,
				AssetName:    assetName,
				Status:       status,
				Location:     optString(row["location"]),
				Category:     optString(row["category"]),
				Manufacturer: optString(row["manufacturer"]),
				Model:        optString(row["model"]),
				SerialNumber: optString(row["serial_number"]),
			}

			if date := strings.TrimSpace(row["install_date"]); date != "" {
				when, err := ParseDate(date)
				if err != nil {
					result.Errors = append(result.Errors,
						fmt.Sprintf("Row %d: Invalid date format for 'install_date'. Use YYYY-MM-DD format", rowNum))
					continue
				}
				asset.InstallDate = &when
			}

			// Nested transaction = savepoint. A duplicate asset_code (or any
			// other insert failure) must not poison the outer transaction for
			// the rows that still follow.
			insertErr := tx.Transaction(func(rowTx *gorm.DB) error {
				return rowTx.Create(&asset).Error
			})
			if insertErr != nil {
				if errors.Is(insertErr, gorm.ErrDuplicatedKey) {
					result.Errors = append(result.Errors,
						fmt.Sprintf("Row %d: Duplicate asset_code '%s'", rowNum, assetCode))
				} else {
					result.Errors = append(result.Errors,
						fmt.Sprintf("Row %d: %v", rowNum, insertErr))
				}
				continue
			}

			result.Count++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bulk load transaction: %w", err)
	}

	return result, nil
}

func optString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
