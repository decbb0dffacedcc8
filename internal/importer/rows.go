package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/plantops/maintgo/internal/models"
)

// maxReportedErrors caps the per-row error list; anything beyond it is
// summarized in a single trailing entry.
const maxReportedErrors = 10

// ValidationResult is the full per-row report for a parsed file.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// displayRow converts a 0-based slice index into the spreadsheet row number
// shown to the user (the header occupies row 1).
func displayRow(index int) int {
	return index + 2
}

// ValidateRows checks field presence, status enumeration and date
// parseability for every row. Unlike the schema check this is not fail-fast:
// all violations are collected so the caller gets one complete report.
func ValidateRows(rows []Row) *ValidationResult {
	var errs []string

	for i, raw := range rows {
		row := normalizeRow(raw)
		rowNum := displayRow(i)

		if strings.TrimSpace(row["asset_code"]) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing required field 'asset_code'", rowNum))
		}
		if strings.TrimSpace(row["asset_name"]) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing required field 'asset_name'", rowNum))
		}

		if status := strings.TrimSpace(row["status"]); status != "" {
			if !models.IsValidAssetStatus(strings.ToUpper(status)) {
				errs = append(errs, fmt.Sprintf("Row %d: Invalid status '%s'. Must be one of: %s",
					rowNum, status, strings.Join(models.AllowedAssetStatuses, ", ")))
			}
		}

		if date := strings.TrimSpace(row["install_date"]); date != "" {
			if _, err := ParseDate(date); err != nil {
				errs = append(errs, fmt.Sprintf("Row %d: Invalid date format for 'install_date'. Use YYYY-MM-DD format", rowNum))
			}
		}
	}

	if len(errs) > maxReportedErrors {
		remaining := len(errs) - maxReportedErrors
		errs = append(errs[:maxReportedErrors], fmt.Sprintf("... and %d more validation errors", remaining))
	}

	return &ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	time.RFC3339,
}

// ParseDate parses a calendar date in any of the accepted layouts.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
