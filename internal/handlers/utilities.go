package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/plantops/maintgo/internal/models"
)

// listUtilityLogs returns all meter readings, newest first
func (r *Router) listUtilityLogs(w http.ResponseWriter, req *http.Request) {
	var logs []models.UtilityLog
	if err := r.db.Order("reading_at DESC").Find(&logs).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error fetching utility logs")
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

type utilityLogRequest struct {
	UtilityType string     `json:"utility_type"`
	MeterPoint  string     `json:"meter_point"`
	Reading     float64    `json:"reading"`
	ReadingAt   *time.Time `json:"reading_at"`
}

// createUtilityLog records a meter reading
func (r *Router) createUtilityLog(w http.ResponseWriter, req *http.Request) {
	var body utilityLogRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if !models.IsValidUtilityType(body.UtilityType) {
		respondError(w, http.StatusBadRequest, "Invalid utility type")
		return
	}

	log := models.UtilityLog{
		UtilityType: body.UtilityType,
		MeterPoint:  body.MeterPoint,
		Reading:     body.Reading,
		ReadingAt:   time.Now().UTC(),
	}
	if body.ReadingAt != nil {
		log.ReadingAt = *body.ReadingAt
	}

	if err := r.db.Create(&log).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error creating utility log")
		return
	}
	respondJSON(w, http.StatusCreated, log)
}
