package handlers

import (
	"net/http"

	"github.com/plantops/maintgo/internal/models"
	"github.com/plantops/maintgo/internal/report"
)

// assetRegisterPDF streams the asset master list as a PDF table.
func (r *Router) assetRegisterPDF(w http.ResponseWriter, req *http.Request) {
	var assets []models.AssetMaster
	if err := r.db.Order("asset_code").Find(&assets).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error fetching assets")
		return
	}

	pdf, err := report.AssetRegisterPDF(assets)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="asset-register.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// qrLabelSheetPDF streams a printable sheet of QR labels, one per asset.
func (r *Router) qrLabelSheetPDF(w http.ResponseWriter, req *http.Request) {
	var assets []models.AssetMaster
	if err := r.db.Order("asset_code").Find(&assets).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error fetching assets")
		return
	}

	var codes []models.AssetQR
	if err := r.db.Find(&codes).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error fetching QR payloads")
		return
	}
	payloads := make(map[uint]string, len(codes))
	for _, code := range codes {
		payloads[code.AssetID] = code.QRPayload
	}

	pdf, err := report.QRLabelSheetPDF(assets, payloads)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render label sheet")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="asset-labels.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
