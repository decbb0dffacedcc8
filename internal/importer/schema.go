package importer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	requiredColumns = []string{"asset_code", "asset_name"}
	optionalColumns = []string{
		"location", "category", "manufacturer", "model",
		"serial_number", "install_date", "status",
	}
)

// ErrEmptyFile is returned when the parsed sequence has no data rows.
var ErrEmptyFile = errors.New("file is empty or contains no data")

// SchemaError reports every structural problem with the header in one shot.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// ValidateSchema checks the header (derived from the first row) against the
// required/optional column whitelist. Column names are lower-cased and
// trimmed before comparison. Missing required columns and unknown columns
// are reported together in a single error.
func ValidateSchema(rows []Row) error {
	if len(rows) == 0 {
		return ErrEmptyFile
	}

	fileColumns := make(map[string]bool, len(rows[0]))
	for col := range rows[0] {
		fileColumns[normalizeColumn(col)] = true
	}

	valid := make(map[string]bool, len(requiredColumns)+len(optionalColumns))
	for _, col := range requiredColumns {
		valid[col] = true
	}
	for _, col := range optionalColumns {
		valid[col] = true
	}

	var problems []string

	var missing []string
	for _, col := range requiredColumns {
		if !fileColumns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
	}

	var unknown []string
	for col := range fileColumns {
		if !valid[col] {
			unknown = append(unknown, col)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		allValid := append(append([]string{}, requiredColumns...), optionalColumns...)
		problems = append(problems, fmt.Sprintf("Unknown columns: %s. Valid columns are: %s",
			strings.Join(unknown, ", "), strings.Join(allValid, ", ")))
	}

	if len(problems) > 0 {
		return &SchemaError{Problems: problems}
	}
	return nil
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// normalizeRow rewrites a row with normalized column names so lookups work
// regardless of header casing.
func normalizeRow(row Row) Row {
	out := make(Row, len(row))
	for key, value := range row {
		out[normalizeColumn(key)] = value
	}
	return out
}
