package handlers

import (
	"net/http"
	"time"

	"github.com/plantops/maintgo/internal/models"
)

// dashboardStats aggregates the headline counts for the landing dashboard.
func (r *Router) dashboardStats(w http.ResponseWriter, req *http.Request) {
	var (
		assetCount     int64
		pmTotal        int64
		pmDueToday     int64
		sparesCount    int64
		openBreakdowns int64
	)

	today := time.Now().UTC().Format("2006-01-02")

	queries := []error{
		r.db.Model(&models.AssetMaster{}).Count(&assetCount).Error,
		r.db.Model(&models.PMSchedule{}).Count(&pmTotal).Error,
		r.db.Model(&models.PMSchedule{}).Where("DATE(due_date) = ?", today).Count(&pmDueToday).Error,
		r.db.Model(&models.SparePart{}).Count(&sparesCount).Error,
		r.db.Model(&models.BreakdownLog{}).Where("status = ?", "OPEN").Count(&openBreakdowns).Error,
	}
	for _, err := range queries {
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Database error fetching dashboard stats")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"assets": map[string]interface{}{
			"total":    assetCount,
			"subtitle": "Total Assets",
		},
		"pm": map[string]interface{}{
			"total":    pmTotal,
			"dueToday": pmDueToday,
		},
		"spares": map[string]interface{}{
			"total":    sparesCount,
			"subtitle": "Items in Stock",
		},
		"breakdowns": map[string]interface{}{
			"open": openBreakdowns,
		},
	})
}
