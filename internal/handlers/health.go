package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/plantops/maintgo/internal/models"
)

// keyTables are checked individually by the diagnostics endpoints.
var keyTables = []struct {
	name  string
	model interface{}
}{
	{"assets_master", &models.AssetMaster{}},
	{"breakdown_logs", &models.BreakdownLog{}},
	{"spare_parts_inventory", &models.SparePart{}},
	{"profiles", &models.Profile{}},
}

// diagnostics is the root endpoint: a verbose connection report used when
// wiring up a new environment.
func (r *Router) diagnostics(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if err := r.db.Exec("SELECT 1").Error; err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":    "error",
			"message":   "Backend server is running but database connection failed",
			"timestamp": timestamp,
			"error":     map[string]string{"message": err.Error()},
			"diagnostics": map[string]interface{}{
				"connection": map[string]string{
					"status":       "failed",
					"responseTime": fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
				},
				"server": serverStats(r.startedAt),
			},
		})
		return
	}
	pingTime := time.Since(start)

	tables, err := r.db.Migrator().GetTables()
	if err != nil {
		tables = nil
	}

	tableStatus := make(map[string]interface{}, len(keyTables))
	for _, t := range keyTables {
		var count int64
		if err := r.db.Model(t.model).Count(&count).Error; err != nil {
			tableStatus[t.name] = map[string]interface{}{"exists": false, "error": err.Error()}
			continue
		}
		tableStatus[t.name] = map[string]interface{}{"exists": true, "recordCount": count}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "success",
		"message":   "Backend server is running and connected to the database!",
		"timestamp": timestamp,
		"diagnostics": map[string]interface{}{
			"connection": map[string]string{
				"status":              "connected",
				"responseTime":        fmt.Sprintf("%dms", pingTime.Milliseconds()),
				"totalDiagnosticTime": fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
			},
			"database": map[string]interface{}{
				"name":   r.db.Migrator().CurrentDatabase(),
				"tables": len(tables),
				"list":   tables,
			},
			"keyTables": tableStatus,
			"server":    serverStats(r.startedAt),
		},
	})
}

// healthCheck reports db connectivity, key-table reachability and memory
// pressure. Degraded states still answer 200; a dead database answers 503.
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(r.startedAt).Seconds(),
		"status":    "healthy",
	}
	checks := map[string]interface{}{}
	status := "healthy"

	dbStart := time.Now()
	if err := r.db.Exec("SELECT 1").Error; err != nil {
		checks["database"] = map[string]string{
			"status":  "unhealthy",
			"error":   err.Error(),
			"message": "Database connection failed",
		}
		health["status"] = "unhealthy"
		health["checks"] = checks
		respondJSON(w, http.StatusServiceUnavailable, health)
		return
	}
	checks["database"] = map[string]string{
		"status":       "healthy",
		"responseTime": fmt.Sprintf("%dms", time.Since(dbStart).Milliseconds()),
		"message":      "Database connection is working",
	}

	tableChecks := make(map[string]interface{}, len(keyTables))
	for _, t := range keyTables {
		tableStart := time.Now()
		var count int64
		if err := r.db.Model(t.model).Count(&count).Error; err != nil {
			tableChecks[t.name] = map[string]string{"status": "unhealthy", "error": err.Error()}
			status = "degraded"
			continue
		}
		tableChecks[t.name] = map[string]interface{}{
			"status":       "healthy",
			"recordCount":  count,
			"responseTime": fmt.Sprintf("%dms", time.Since(tableStart).Milliseconds()),
		}
	}
	checks["tables"] = tableChecks

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	heapMB := mem.HeapAlloc / 1024 / 1024
	memStatus := "healthy"
	memMessage := "Memory usage is normal"
	if heapMB >= 500 {
		memStatus = "warning"
		memMessage = "High memory usage detected"
		status = "degraded"
	}
	checks["memory"] = map[string]interface{}{
		"status": memStatus,
		"usage": map[string]uint64{
			"heapAllocMB": heapMB,
			"sysMB":       mem.Sys / 1024 / 1024,
			"goroutines":  uint64(runtime.NumGoroutine()),
		},
		"message": memMessage,
	}

	health["status"] = status
	health["checks"] = checks
	respondJSON(w, http.StatusOK, health)
}

func serverStats(startedAt time.Time) map[string]interface{} {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return map[string]interface{}{
		"uptime":      time.Since(startedAt).Seconds(),
		"goVersion":   runtime.Version(),
		"platform":    runtime.GOOS,
		"goroutines":  runtime.NumGoroutine(),
		"heapAllocMB": mem.HeapAlloc / 1024 / 1024,
	}
}
