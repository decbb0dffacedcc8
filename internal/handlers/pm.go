package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"

	"github.com/plantops/maintgo/internal/importer"
	"github.com/plantops/maintgo/internal/models"
)

// listPMSchedules returns all PM schedules joined with the asset name,
// soonest due first.
func (r *Router) listPMSchedules(w http.ResponseWriter, req *http.Request) {
	var schedules []models.PMWithAsset
	err := r.db.
		Table("pm_schedule").
		Select("pm_schedule.*, assets_master.asset_name").
		Joins("LEFT JOIN assets_master ON pm_schedule.asset_id = assets_master.id").
		Order("pm_schedule.due_date ASC").
		Scan(&schedules).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error fetching PM schedules")
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}

// getPMSchedule returns one schedule with asset details
func (r *Router) getPMSchedule(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var schedule models.PMWithAsset
	err := r.db.
		Table("pm_schedule").
		Select("pm_schedule.*, assets_master.asset_name, assets_master.asset_code, assets_master.location, assets_master.model").
		Joins("LEFT JOIN assets_master ON pm_schedule.asset_id = assets_master.id").
		Where("pm_schedule.id = ?", id).
		Scan(&schedule).Error
	if err != nil || schedule.ID == 0 {
		respondError(w, http.StatusNotFound, "PM schedule not found")
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

type pmScheduleRequest struct {
	AssetID         uint            `json:"asset_id"`
	Title           string          `json:"title"`
	Frequency       *string         `json:"frequency"`
	DueDate         *string         `json:"due_date"`
	Checklist       json.RawMessage `json:"checklist"`
	Status          string          `json:"status"`
	LastCompletedAt *time.Time      `json:"last_completed_at"`
}

// createPMSchedule inserts a new PM schedule line
func (r *Router) createPMSchedule(w http.ResponseWriter, req *http.Request) {
	var body pmScheduleRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	schedule := models.PMSchedule{
		AssetID:         body.AssetID,
		Title:           body.Title,
		Frequency:       body.Frequency,
		LastCompletedAt: body.LastCompletedAt,
	}
	if body.Status != "" {
		schedule.Status = body.Status
	}
	if body.DueDate != nil && *body.DueDate != "" {
		when, err := importer.ParseDate(*body.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due_date value")
			return
		}
		schedule.DueDate = &when
	}
	if len(body.Checklist) > 0 {
		schedule.Checklist = datatypes.JSON(body.Checklist)
	}

	if err := r.db.Create(&schedule).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error creating PM schedule")
		return
	}
	respondJSON(w, http.StatusCreated, schedule)
}

// pmUpdateColumns is the whitelist of directly updatable columns.
var pmUpdateColumns = []string{
	"title", "frequency", "due_date", "checklist", "status", "last_completed_at",
}

// updatePMSchedule applies a partial update from a loose JSON body
func (r *Router) updatePMSchedule(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var body map[string]json.RawMessage
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	for _, col := range pmUpdateColumns {
		raw, ok := body[col]
		if !ok {
			continue
		}
		switch col {
		case "checklist":
			updates[col] = datatypes.JSON(raw)
		case "due_date":
			var value string
			if err := json.Unmarshal(raw, &value); err != nil || value == "" {
				updates[col] = nil
				continue
			}
			when, err := importer.ParseDate(value)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid due_date value")
				return
			}
			updates[col] = when
		default:
			var value interface{}
			if err := json.Unmarshal(raw, &value); err != nil {
				respondError(w, http.StatusBadRequest, "Invalid request payload")
				return
			}
			updates[col] = value
		}
	}
	if len(updates) == 0 {
		respondError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.Model(&models.PMSchedule{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Database error updating PM schedule")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "PM schedule not found")
		return
	}

	var schedule models.PMSchedule
	if err := r.db.First(&schedule, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error updating PM schedule")
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}
