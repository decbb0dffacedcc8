package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/plantops/maintgo/internal/config"
	"github.com/plantops/maintgo/internal/database"
	"github.com/plantops/maintgo/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*Router, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	err = gdb.AutoMigrate(
		&models.Profile{},
		&models.AssetMaster{},
		&models.AssetQR{},
		&models.BreakdownLog{},
		&models.PMSchedule{},
		&models.SparePart{},
		&models.SpareTxn{},
		&models.UtilityLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		NodeEnv:    "test",
		Port:       "0",
		JWTSecret:  "test-secret",
		CORSOrigin: "http://localhost:5173",
	}
	return NewRouter(database.FromGorm(gdb), cfg), gdb
}

func doJSON(t *testing.T, router *Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}

func wantError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	wantStatus(t, rec, status)
	body := decodeBody(t, rec)
	if body["error"] != message {
		t.Errorf("error = %q, want %q", body["error"], message)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func seedTestAsset(t *testing.T, db *gorm.DB, code string) *models.AssetMaster {
	t.Helper()
	asset := models.AssetMaster{AssetCode: code, AssetName: "Asset " + code, Status: models.AssetStatusActive}
	if err := db.Create(&asset).Error; err != nil {
		t.Fatalf("seed asset %s: %v", code, err)
	}
	return &asset
}

func seedTestPart(t *testing.T, db *gorm.DB, code string, stock float64) *models.SparePart {
	t.Helper()
	part := models.SparePart{PartCode: code, PartName: "Part " + code, StockOnHand: stock}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("seed part %s: %v", code, err)
	}
	return &part
}

// multipartUpload builds a one-file multipart body for the import endpoint.
func multipartUpload(t *testing.T, filename string, content []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func doUpload(t *testing.T, router *Router, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/api/assets/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
