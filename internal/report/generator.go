package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/plantops/maintgo/internal/models"
)

// AssetRegisterPDF renders the asset master list as a landscape A4 table.
func AssetRegisterPDF(assets []models.AssetMaster) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Asset Register")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 8)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d assets", time.Now().UTC().Format("2006-01-02 15:04 MST"), len(assets)))
	pdf.Ln(8)

	headers := []string{"Code", "Name", "Location", "Category", "Manufacturer", "Model", "Serial No", "Install Date", "Status"}
	widths := []float64{28, 52, 32, 28, 32, 28, 32, 24, 21}

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	writeHeader()

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	for _, asset := range assets {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			writeHeader()
		}

		installDate := ""
		if asset.InstallDate != nil {
			installDate = asset.InstallDate.Format("2006-01-02")
		}

		cells := []string{
			asset.AssetCode,
			asset.AssetName,
			deref(asset.Location),
			deref(asset.Category),
			deref(asset.Manufacturer),
			deref(asset.Model),
			deref(asset.SerialNumber),
			installDate,
			asset.Status,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render asset register: %w", err)
	}
	return buf.Bytes(), nil
}

// QRLabelSheetPDF lays out one QR label per asset on an A4 grid, ready to
// print and stick on the equipment. Each code carries the asset's QR payload.
func QRLabelSheetPDF(assets []models.AssetMaster, payloads map[uint]string) ([]byte, error) {
	const (
		cols       = 3
		rows       = 8
		marginTop  = 10.0
		marginLeft = 10.0
	)
	pageWidth, pageHeight := 210.0, 297.0
	labelW := (pageWidth - marginLeft*2) / float64(cols)
	labelH := (pageHeight - marginTop*2) / float64(rows)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 8)

	labelsPerPage := cols * rows

	for i, asset := range assets {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cols
		row := indexOnPage / cols

		x := marginLeft + float64(col)*labelW
		y := marginTop + float64(row)*labelH

		payload := payloads[asset.ID]
		if payload == "" {
			payload = asset.AssetCode
		}

		qrPng, err := qrcode.Encode(payload, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("encode QR for asset %s: %w", asset.AssetCode, err)
		}

		imgName := fmt.Sprintf("qr_%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPng))

		qrSize := labelH - 10
		pdf.ImageOptions(imgName, x+2, y+2, qrSize, qrSize, false, opts, 0, "")

		pdf.SetXY(x+qrSize+4, y+4)
		pdf.MultiCell(labelW-qrSize-6, 4, asset.AssetCode+"\n"+asset.AssetName, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render label sheet: %w", err)
	}
	return buf.Bytes(), nil
}
