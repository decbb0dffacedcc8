package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/plantops/maintgo/internal/models"
)

// listSpares returns the whole spare-parts inventory
func (r *Router) listSpares(w http.ResponseWriter, req *http.Request) {
	var spares []models.SparePart
	if err := r.db.Order("part_name").Find(&spares).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error fetching spares")
		return
	}
	respondJSON(w, http.StatusOK, spares)
}

// getSpare returns one spare part by id
func (r *Router) getSpare(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var part models.SparePart
	if err := r.db.First(&part, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Spare part not found")
		return
	}
	respondJSON(w, http.StatusOK, part)
}

type sparePartRequest struct {
	PartCode     string   `json:"part_code"`
	PartName     string   `json:"part_name"`
	PartNo       *string  `json:"part_no"`
	UOM          string   `json:"uom"`
	StockOnHand  float64  `json:"stock_on_hand"`
	MinLevel     float64  `json:"min_level"`
	ReorderLevel float64  `json:"reorder_level"`
	Location     *string  `json:"location"`
	Category     *string  `json:"category"`
	UnitCost     *float64 `json:"unit_cost"`
	Supplier     *string  `json:"supplier"`
}

// createSpare inserts a new spare part
func (r *Router) createSpare(w http.ResponseWriter, req *http.Request) {
	var body sparePartRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	part := models.SparePart{
		PartCode:     body.PartCode,
		PartName:     body.PartName,
		PartNo:       body.PartNo,
		StockOnHand:  body.StockOnHand,
		MinLevel:     body.MinLevel,
		ReorderLevel: body.ReorderLevel,
		Location:     body.Location,
		Category:     body.Category,
		UnitCost:     body.UnitCost,
		Supplier:     body.Supplier,
	}
	if body.UOM != "" {
		part.UOM = body.UOM
	}

	if err := r.db.Create(&part).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error creating spare part")
		return
	}
	respondJSON(w, http.StatusCreated, part)
}

// spareUpdateColumns is the whitelist of directly updatable columns.
var spareUpdateColumns = []string{
	"part_code", "part_name", "uom", "stock_on_hand", "min_level",
	"reorder_level", "location", "category", "unit_cost", "supplier",
}

// updateSpare applies a partial update from a loose JSON body
func (r *Router) updateSpare(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	var body map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	for _, col := range spareUpdateColumns {
		if value, ok := body[col]; ok {
			updates[col] = value
		}
	}
	if len(updates) == 0 {
		respondError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.Model(&models.SparePart{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Database error updating spare part")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Spare part not found")
		return
	}

	var part models.SparePart
	if err := r.db.First(&part, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Database error updating spare part")
		return
	}
	respondJSON(w, http.StatusOK, part)
}

// deleteSpare removes a spare part by id
func (r *Router) deleteSpare(w http.ResponseWriter, req *http.Request) {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)

	result := r.db.Delete(&models.SparePart{}, id)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Database error deleting spare part")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Spare part not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Spare part deleted successfully"})
}
