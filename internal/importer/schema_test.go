package importer

import (
	"errors"
	"strings"
	"testing"
)

func rowWithColumns(cols ...string) Row {
	row := make(Row, len(cols))
	for _, col := range cols {
		row[col] = "x"
	}
	return row
}

func TestValidateSchemaOK(t *testing.T) {
	rows := []Row{rowWithColumns("asset_code", "asset_name", "location", "status")}
	if err := ValidateSchema(rows); err != nil {
		t.Fatalf("unexpected schema error: %v", err)
	}
}

func TestValidateSchemaCaseInsensitiveHeader(t *testing.T) {
	rows := []Row{rowWithColumns("Asset_Code", " ASSET_NAME ", "Location")}
	if err := ValidateSchema(rows); err != nil {
		t.Fatalf("header casing should not matter, got: %v", err)
	}
}

func TestValidateSchemaEmptyFile(t *testing.T) {
	if err := ValidateSchema(nil); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestValidateSchemaMissingRequired(t *testing.T) {
	rows := []Row{rowWithColumns("asset_name", "location")}

	err := ValidateSchema(rows)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(se.Problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(se.Problems), se.Problems)
	}
	if want := "Missing required columns: asset_code"; se.Problems[0] != want {
		t.Errorf("problem = %q, want %q", se.Problems[0], want)
	}
}

func TestValidateSchemaUnknownColumns(t *testing.T) {
	rows := []Row{rowWithColumns("asset_code", "asset_name", "warranty", "color")}

	err := ValidateSchema(rows)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(se.Problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(se.Problems), se.Problems)
	}
	if !strings.HasPrefix(se.Problems[0], "Unknown columns: color, warranty.") {
		t.Errorf("unknown columns should be sorted, got %q", se.Problems[0])
	}
	if !strings.Contains(se.Problems[0], "Valid columns are: asset_code, asset_name") {
		t.Errorf("problem should list the valid columns, got %q", se.Problems[0])
	}
}

func TestValidateSchemaReportsBothProblemKinds(t *testing.T) {
	rows := []Row{rowWithColumns("asset_name", "warranty")}

	err := ValidateSchema(rows)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(se.Problems) != 2 {
		t.Fatalf("expected missing + unknown problems together, got %v", se.Problems)
	}
}
