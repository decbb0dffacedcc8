package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one parsed spreadsheet row, keyed by header column name.
// Keys are kept exactly as they appear in the file; normalization happens
// at the point of use (schema check, row validation, loading).
type Row map[string]string

// ErrUnsupportedFormat is returned for any extension other than csv/xlsx/xls.
var ErrUnsupportedFormat = errors.New("unsupported file format, only CSV and Excel files are allowed")

// ParseError wraps a decode failure from the underlying format reader.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "failed to parse file: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes an uploaded spreadsheet into rows, using the first line as
// the header. The format is picked from the filename extension.
func Parse(data []byte, filename string) ([]Row, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "csv":
		return parseCSV(data)
	case "xlsx", "xls":
		return parseWorkbook(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func parseCSV(data []byte) ([]Row, error) {
	// Excel exports often carry a UTF-8 BOM
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return recordsToRows(records), nil
}

func parseWorkbook(data []byte) ([]Row, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer book.Close()

	sheet := book.GetSheetName(0)
	records, err := book.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return recordsToRows(records), nil
}

// recordsToRows maps raw records onto the header row. Rows shorter than the
// header (trailing empty cells) are padded with empty strings.
func recordsToRows(records [][]string) []Row {
	if len(records) < 2 {
		return nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
