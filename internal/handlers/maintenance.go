package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/plantops/maintgo/internal/inventory"
)

type maintenanceLogRequest struct {
	AssetID     uint                `json:"asset_id"`
	Description string              `json:"description"`
	ReportedBy  string              `json:"reported_by"`
	RootCause   *string             `json:"root_cause"`
	ActionTaken *string             `json:"action_taken"`
	PartsUsed   []inventory.PartUse `json:"parts_used"`
}

// createMaintenanceLog records a resolved maintenance event and deducts the
// consumed spares in one atomic transaction.
func (r *Router) createMaintenanceLog(w http.ResponseWriter, req *http.Request) {
	var body maintenanceLogRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	engine := inventory.NewEngine(r.db.DB)
	logID, err := engine.CreateMaintenanceLog(inventory.Request{
		AssetID:     body.AssetID,
		Description: body.Description,
		ReportedBy:  body.ReportedBy,
		RootCause:   body.RootCause,
		ActionTaken: body.ActionTaken,
		PartsUsed:   body.PartsUsed,
	})
	if err != nil {
		if errors.Is(err, inventory.ErrMissingField) {
			respondError(w, http.StatusBadRequest, "Asset, description, and reporter are required")
			return
		}
		respondError(w, http.StatusInternalServerError, "Database error while creating maintenance log")
		return
	}

	r.hub.Broadcast("maintenance_log.created", map[string]interface{}{
		"breakdown_id": logID,
		"asset_id":     body.AssetID,
		"parts_used":   len(body.PartsUsed),
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Maintenance log created and inventory updated successfully",
		"breakdown_id": logID,
	})
}
