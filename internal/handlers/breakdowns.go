package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/plantops/maintgo/internal/models"
)

// listBreakdowns returns breakdown logs joined with the asset name,
// optionally filtered to one calendar day via ?date=YYYY-MM-DD.
func (r *Router) listBreakdowns(w http.ResponseWriter, req *http.Request) {
	query := r.db.
		Table("breakdown_logs").
		Select("breakdown_logs.*, assets_master.asset_name").
		Joins("LEFT JOIN assets_master ON breakdown_logs.asset_id = assets_master.id").
		Order("breakdown_logs.created_at DESC")

	if date := req.URL.Query().Get("date"); date != "" {
		query = query.Where("DATE(breakdown_logs.created_at) = ?", date)
	}

	var logs []models.BreakdownWithAsset
	if err := query.Scan(&logs).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error fetching breakdowns")
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

// getBreakdown returns one breakdown with the asset details used by the
// detail view.
func (r *Router) getBreakdown(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var log models.BreakdownWithAsset
	err := r.db.
		Table("breakdown_logs").
		Select("breakdown_logs.*, assets_master.asset_name, assets_master.asset_code, assets_master.location, assets_master.model, assets_master.serial_number").
		Joins("LEFT JOIN assets_master ON breakdown_logs.asset_id = assets_master.id").
		Where("breakdown_logs.id = ?", id).
		Scan(&log).Error
	if err != nil || log.ID == 0 {
		respondError(w, http.StatusNotFound, "Breakdown log not found")
		return
	}
	respondJSON(w, http.StatusOK, log)
}

type createBreakdownRequest struct {
	AssetID               uint    `json:"asset_id"`
	Description           string  `json:"description"`
	ReportedBy            string  `json:"reported_by"`
	Status                string  `json:"status"`
	BuName                *string `json:"bu_name"`
	ProductionOpeningTime *string `json:"production_opening_time"`
	EntryDate             *string `json:"entry_date"`
	EntryTime             *string `json:"entry_time"`
	EquipmentType         *string `json:"equipment_type"`
	RootCause             *string `json:"root_cause"`
	ActionTaken           *string `json:"action_taken"`
	Note                  *string `json:"note"`
}

// createBreakdown records a new breakdown. Status defaults to OPEN and is
// deliberately not constrained: transitions are free-form.
func (r *Router) createBreakdown(w http.ResponseWriter, req *http.Request) {
	var body createBreakdownRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	status := body.Status
	if status == "" {
		status = "OPEN"
	}

	log := models.BreakdownLog{
		AssetID:               body.AssetID,
		Description:           body.Description,
		ReportedBy:            body.ReportedBy,
		Status:                status,
		BuName:                body.BuName,
		ProductionOpeningTime: body.ProductionOpeningTime,
		EntryDate:             body.EntryDate,
		EntryTime:             body.EntryTime,
		EquipmentType:         body.EquipmentType,
		RootCause:             body.RootCause,
		ActionTaken:           body.ActionTaken,
		Note:                  body.Note,
	}

	if err := r.db.Create(&log).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error creating breakdown")
		return
	}

	r.hub.Broadcast("breakdown.created", log)
	respondJSON(w, http.StatusCreated, log)
}

// breakdownUpdateColumns is the whitelist of directly updatable columns.
var breakdownUpdateColumns = []string{
	"description", "reported_by", "acknowledged_by", "root_cause",
	"action_taken", "started_at", "ended_at", "status",
}

// updateBreakdown applies a partial update from a loose JSON body. Only
// whitelisted columns are touched; everything else is ignored.
func (r *Router) updateBreakdown(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var body map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	for _, col := range breakdownUpdateColumns {
		if value, ok := body[col]; ok {
			updates[col] = value
		}
	}
	if len(updates) == 0 {
		respondError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.Model(&models.BreakdownLog{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Database error updating breakdown")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Breakdown log not found")
		return
	}

	var log models.BreakdownLog
	if err := r.db.First(&log, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error updating breakdown")
		return
	}
	respondJSON(w, http.StatusOK, log)
}
