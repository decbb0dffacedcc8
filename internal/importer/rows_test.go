package importer

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestValidateRowsAllValid(t *testing.T) {
	rows := []Row{
		{"asset_code": "A1", "asset_name": "Pump", "status": "ACTIVE", "install_date": "2023-01-15"},
		{"asset_code": "A2", "asset_name": "Fan"},
	}

	result := ValidateRows(rows)
	if !result.Valid {
		t.Fatalf("expected valid, got errors: %v", result.Errors)
	}
}

func TestValidateRowsLowercaseStatusAccepted(t *testing.T) {
	rows := []Row{{"asset_code": "A1", "asset_name": "Pump", "status": "active"}}

	result := ValidateRows(rows)
	if !result.Valid {
		t.Fatalf("lowercase status should pass validation, got: %v", result.Errors)
	}
}

func TestValidateRowsMissingFields(t *testing.T) {
	rows := []Row{
		{"asset_code": "", "asset_name": "Pump"},
		{"asset_code": "A2", "asset_name": "   "},
	}

	result := ValidateRows(rows)
	if result.Valid {
		t.Fatal("expected validation failure")
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
	if result.Errors[0] != "Row 2: Missing required field 'asset_code'" {
		t.Errorf("unexpected message: %q", result.Errors[0])
	}
	if result.Errors[1] != "Row 3: Missing required field 'asset_name'" {
		t.Errorf("unexpected message: %q", result.Errors[1])
	}
}

func TestValidateRowsInvalidStatus(t *testing.T) {
	rows := []Row{{"asset_code": "A1", "asset_name": "Pump", "status": "BROKEN"}}

	result := ValidateRows(rows)
	if result.Valid || len(result.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", result.Errors)
	}
	want := "Row 2: Invalid status 'BROKEN'. Must be one of: ACTIVE, UNDER_AMC, INACTIVE, DISPOSED"
	if result.Errors[0] != want {
		t.Errorf("message = %q, want %q", result.Errors[0], want)
	}
}

func TestValidateRowsBadDate(t *testing.T) {
	rows := []Row{{"asset_code": "A1", "asset_name": "Pump", "install_date": "15th Jan"}}

	result := ValidateRows(rows)
	if result.Valid || len(result.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", result.Errors)
	}
	if result.Errors[0] != "Row 2: Invalid date format for 'install_date'. Use YYYY-MM-DD format" {
		t.Errorf("unexpected message: %q", result.Errors[0])
	}
}

func TestValidateRowsTruncation(t *testing.T) {
	// 15 rows each missing asset_name: the report must stop at 10 entries
	// plus one summary line.
	rows := make([]Row, 15)
	for i := range rows {
		rows[i] = Row{"asset_code": fmt.Sprintf("A%d", i), "asset_name": ""}
	}

	result := ValidateRows(rows)
	if len(result.Errors) != 11 {
		t.Fatalf("expected 11 reported errors, got %d", len(result.Errors))
	}
	if result.Errors[10] != "... and 5 more validation errors" {
		t.Errorf("summary line = %q", result.Errors[10])
	}
	for _, msg := range result.Errors[:10] {
		if !strings.HasPrefix(msg, "Row ") {
			t.Errorf("unexpected leading entry %q", msg)
		}
	}
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC)
	for _, value := range []string{"2023-03-05", "2023/03/05", "05-03-2023", "05/03/2023"} {
		got, err := ParseDate(value)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", value, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", value, got, want)
		}
	}

	if _, err := ParseDate("2023-13-45"); err == nil {
		t.Error("expected error for impossible date")
	}
}
