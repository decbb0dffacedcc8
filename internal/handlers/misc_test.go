package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/plantops/maintgo/internal/models"
)

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)
	wantStatus(t, rec, http.StatusOK)
	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}

func TestDashboardStats(t *testing.T) {
	router, db := newTestRouter(t)
	asset := seedTestAsset(t, db, "A1")
	seedTestPart(t, db, "SP-1", 3)
	db.Create(&models.BreakdownLog{AssetID: asset.ID, Description: "Down", ReportedBy: "ops", Status: "OPEN"})
	db.Create(&models.BreakdownLog{AssetID: asset.ID, Description: "Fixed", ReportedBy: "ops", Status: "RESOLVED"})

	rec := doJSON(t, router, http.MethodGet, "/api/dashboard/stats", nil)
	wantStatus(t, rec, http.StatusOK)
	body := decodeBody(t, rec)

	assets, _ := body["assets"].(map[string]interface{})
	if assets["total"] != float64(1) || assets["subtitle"] != "Total Assets" {
		t.Errorf("assets = %v", assets)
	}
	spares, _ := body["spares"].(map[string]interface{})
	if spares["total"] != float64(1) {
		t.Errorf("spares = %v", spares)
	}
	breakdowns, _ := body["breakdowns"].(map[string]interface{})
	if breakdowns["open"] != float64(1) {
		t.Errorf("open breakdowns = %v, want 1", breakdowns["open"])
	}
}

func TestCreateUtilityLog(t *testing.T) {
	router, db := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/utilities", map[string]interface{}{
		"utility_type": "POWER",
		"meter_point":  "MSB-1",
		"reading":      10542.5,
	})
	wantStatus(t, rec, http.StatusCreated)

	var log models.UtilityLog
	if err := db.First(&log).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if log.ReadingAt.IsZero() {
		t.Error("reading_at should default to now")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/utilities", map[string]interface{}{
		"utility_type": "STEAM",
		"reading":      1,
	})
	wantError(t, rec, http.StatusBadRequest, "Invalid utility type")
}

func TestPMScheduleLifecycle(t *testing.T) {
	router, db := newTestRouter(t)
	asset := seedTestAsset(t, db, "A1")

	rec := doJSON(t, router, http.MethodPost, "/api/pm", map[string]interface{}{
		"asset_id":  asset.ID,
		"title":     "Quarterly vibration check",
		"frequency": "QUARTERLY",
		"due_date":  "2026-09-30",
		"checklist": []string{"Check bearings", "Lubricate"},
	})
	wantStatus(t, rec, http.StatusCreated)
	var schedule models.PMSchedule
	if err := json.Unmarshal(rec.Body.Bytes(), &schedule); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if schedule.DueDate == nil || schedule.DueDate.Format("2006-01-02") != "2026-09-30" {
		t.Errorf("due_date = %v", schedule.DueDate)
	}

	var persisted models.PMSchedule
	db.First(&persisted, schedule.ID)
	if persisted.Status != "SCHEDULED" {
		t.Errorf("status = %q, want SCHEDULED default", persisted.Status)
	}

	var steps []string
	if err := json.Unmarshal(schedule.Checklist, &steps); err != nil || len(steps) != 2 {
		t.Errorf("checklist = %s", schedule.Checklist)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/pm/"+itoa(schedule.ID), map[string]interface{}{
		"status": "COMPLETED",
	})
	wantStatus(t, rec, http.StatusOK)

	var updated models.PMSchedule
	db.First(&updated, schedule.ID)
	if updated.Status != "COMPLETED" {
		t.Errorf("status = %q, want COMPLETED", updated.Status)
	}
}

func TestSparesCRUD(t *testing.T) {
	router, db := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/spares", map[string]interface{}{
		"part_code":     "SP-1",
		"part_name":     "Bearing 6204",
		"stock_on_hand": 12,
	})
	wantStatus(t, rec, http.StatusCreated)
	var part models.SparePart
	if err := json.Unmarshal(rec.Body.Bytes(), &part); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var created models.SparePart
	db.First(&created, part.ID)
	if created.UOM != "NOS" {
		t.Errorf("uom = %q, want NOS default", created.UOM)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/spares/"+itoa(part.ID), map[string]interface{}{
		"stock_on_hand": 20,
	})
	wantStatus(t, rec, http.StatusOK)
	var updated models.SparePart
	db.First(&updated, part.ID)
	if updated.StockOnHand != 20 {
		t.Errorf("stock = %v, want 20", updated.StockOnHand)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/spares/"+itoa(part.ID), nil)
	wantStatus(t, rec, http.StatusOK)
	rec = doJSON(t, router, http.MethodDelete, "/api/spares/"+itoa(part.ID), nil)
	wantStatus(t, rec, http.StatusNotFound)
}

func TestCorsPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/assets", nil)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestReportEndpoints(t *testing.T) {
	router, db := newTestRouter(t)
	seedTestAsset(t, db, "A1")
	seedTestAsset(t, db, "A2")

	for _, path := range []string{"/api/reports/assets.pdf", "/api/reports/labels.pdf"} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		wantStatus(t, rec, http.StatusOK)
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("%s Content-Type = %q", path, ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
			t.Errorf("%s body does not look like a PDF", path)
		}
	}
}

func TestListBreakdownsDateFilter(t *testing.T) {
	router, db := newTestRouter(t)
	asset := seedTestAsset(t, db, "A1")
	db.Create(&models.BreakdownLog{AssetID: asset.ID, Description: "Today", ReportedBy: "ops", Status: "OPEN"})

	today := time.Now().UTC().Format("2006-01-02")
	rec := doJSON(t, router, http.MethodGet, "/api/breakdowns?date="+today, nil)
	wantStatus(t, rec, http.StatusOK)
	var logs []models.BreakdownWithAsset
	if err := json.Unmarshal(rec.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("logs today = %d, want 1", len(logs))
	}

	rec = doJSON(t, router, http.MethodGet, "/api/breakdowns?date=1999-01-01", nil)
	var none []models.BreakdownWithAsset
	if err := json.Unmarshal(rec.Body.Bytes(), &none); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("logs for 1999 = %d, want 0", len(none))
	}
}
