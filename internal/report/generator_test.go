package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/plantops/maintgo/internal/models"
)

func sampleAssets(n int) []models.AssetMaster {
	location := "Plant Room"
	installed := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	assets := make([]models.AssetMaster, n)
	for i := range assets {
		assets[i] = models.AssetMaster{
			ID:          uint(i + 1),
			AssetCode:   "A" + string(rune('0'+i%10)),
			AssetName:   "Asset",
			Location:    &location,
			InstallDate: &installed,
			Status:      models.AssetStatusActive,
		}
	}
	return assets
}

func TestAssetRegisterPDF(t *testing.T) {
	pdf, err := AssetRegisterPDF(sampleAssets(5))
	if err != nil {
		t.Fatalf("AssetRegisterPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}

func TestAssetRegisterPDFEmpty(t *testing.T) {
	pdf, err := AssetRegisterPDF(nil)
	if err != nil {
		t.Fatalf("AssetRegisterPDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("empty register should still produce a document")
	}
}

func TestAssetRegisterPDFPaginates(t *testing.T) {
	// Enough rows to force at least a second page.
	pdf, err := AssetRegisterPDF(sampleAssets(60))
	if err != nil {
		t.Fatalf("AssetRegisterPDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("no output")
	}
}

func TestQRLabelSheetPDF(t *testing.T) {
	assets := sampleAssets(30) // spills onto a second page (24 per page)
	payloads := map[uint]string{1: "payload-one"}

	pdf, err := QRLabelSheetPDF(assets, payloads)
	if err != nil {
		t.Fatalf("QRLabelSheetPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}
