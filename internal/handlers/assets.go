package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/plantops/maintgo/internal/importer"
	"github.com/plantops/maintgo/internal/models"
)

// listAssets returns all assets
func (r *Router) listAssets(w http.ResponseWriter, req *http.Request) {
	var assets []models.AssetMaster
	if err := r.db.Find(&assets).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// assetCounts returns the asset total plus a per-status breakdown
func (r *Router) assetCounts(w http.ResponseWriter, req *http.Request) {
	counts := map[string]int64{}

	var total int64
	if err := r.db.Model(&models.AssetMaster{}).Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error fetching asset counts")
		return
	}

	perStatus := map[string]string{
		"active":    models.AssetStatusActive,
		"under_amc": models.AssetStatusUnderAMC,
		"inactive":  models.AssetStatusInactive,
		"disposed":  models.AssetStatusDisposed,
	}
	for key, status := range perStatus {
		var n int64
		if err := r.db.Model(&models.AssetMaster{}).Where("status = ?", status).Count(&n).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Database error fetching asset counts")
			return
		}
		counts[key] = n
	}
	counts["total"] = total

	respondJSON(w, http.StatusOK, counts)
}

// getAsset returns a single asset by id
func (r *Router) getAsset(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var asset models.AssetMaster
	if err := r.db.First(&asset, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Asset not found")
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

type createAssetRequest struct {
	AssetCode    string  `json:"asset_code"`
	AssetName    string  `json:"asset_name"`
	Location     *string `json:"location"`
	Category     *string `json:"category"`
	Manufacturer *string `json:"manufacturer"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
	InstallDate  *string `json:"install_date"`
	Status       string  `json:"status"`
}

// createAsset inserts one asset. Unlike the bulk path, the status here is
// mandatory and must already be a valid enum value.
func (r *Router) createAsset(w http.ResponseWriter, req *http.Request) {
	var body createAssetRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !models.IsValidAssetStatus(body.Status) {
		respondError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	asset := models.AssetMaster{
		AssetCode:    body.AssetCode,
		AssetName:    body.AssetName,
		Location:     body.Location,
		Category:     body.Category,
		Manufacturer: body.Manufacturer,
		Model:        body.Model,
		SerialNumber: body.SerialNumber,
		Status:       body.Status,
	}
	if body.InstallDate != nil && *body.InstallDate != "" {
		when, err := importer.ParseDate(*body.InstallDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid install_date value")
			return
		}
		asset.InstallDate = &when
	}

	if err := r.db.Create(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusBadRequest, "Duplicate asset_code '"+asset.AssetCode+"'")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error creating asset")
		return
	}
	respondJSON(w, http.StatusCreated, asset)
}

// updateAsset applies a partial update: only provided fields change.
func (r *Router) updateAsset(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	payload, err := io.ReadAll(req.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// The raw map records which fields the caller actually sent; the typed
	// struct carries their decoded values.
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	var body createAssetRequest
	if err := json.Unmarshal(payload, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if _, ok := raw["status"]; ok && !models.IsValidAssetStatus(body.Status) {
		respondError(w, http.StatusBadRequest, "Invalid status value")
		return
	}

	var asset models.AssetMaster
	if err := r.db.First(&asset, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Asset not found")
		return
	}

	updates := map[string]interface{}{}
	if _, ok := raw["asset_code"]; ok {
		updates["asset_code"] = body.AssetCode
	}
	if _, ok := raw["asset_name"]; ok {
		updates["asset_name"] = body.AssetName
	}
	if _, ok := raw["location"]; ok {
		updates["location"] = body.Location
	}
	if _, ok := raw["category"]; ok {
		updates["category"] = body.Category
	}
	if _, ok := raw["manufacturer"]; ok {
		updates["manufacturer"] = body.Manufacturer
	}
	if _, ok := raw["model"]; ok {
		updates["model"] = body.Model
	}
	if _, ok := raw["serial_number"]; ok {
		updates["serial_number"] = body.SerialNumber
	}
	if _, ok := raw["status"]; ok {
		updates["status"] = body.Status
	}
	if _, ok := raw["install_date"]; ok && body.InstallDate != nil && *body.InstallDate != "" {
		when, err := importer.ParseDate(*body.InstallDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid install_date value")
			return
		}
		updates["install_date"] = when
	}

	if len(updates) == 0 {
		respondError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}
	updates["updated_at"] = time.Now().UTC()

	if err := r.db.Model(&asset).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error updating asset")
		return
	}
	if err := r.db.First(&asset, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error updating asset")
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// deleteAsset removes an asset by id
func (r *Router) deleteAsset(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	result := r.db.Delete(&models.AssetMaster{}, id)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Database error deleting asset")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Asset not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Asset deleted successfully"})
}

// assetQRCode returns a printable QR PNG for the asset. The payload row is
// created on first request and reused afterwards.
func (r *Router) assetQRCode(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var asset models.AssetMaster
	if err := r.db.First(&asset, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Asset not found")
		return
	}

	var qr models.AssetQR
	err := r.db.Where("asset_id = ?", asset.ID).First(&qr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		qr = models.AssetQR{AssetID: asset.ID, QRPayload: uuid.NewString()}
		err = r.db.Create(&qr).Error
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error generating QR code")
		return
	}

	png, err := qrcode.Encode(qr.QRPayload, qrcode.Medium, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// assetByQR resolves a scanned QR payload back to the asset record.
func (r *Router) assetByQR(w http.ResponseWriter, req *http.Request) {
	payload := mux.Vars(req)["payload"]

	var asset models.AssetMaster
	err := r.db.
		Joins("JOIN asset_qr ON asset_qr.asset_id = assets_master.id").
		Where("asset_qr.qr_payload = ?", payload).
		First(&asset).Error
	if err != nil {
		respondError(w, http.StatusNotFound, "No asset found for this QR code")
		return
	}
	respondJSON(w, http.StatusOK, asset)
}
