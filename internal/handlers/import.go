package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/plantops/maintgo/internal/importer"
)

// maxUploadSize caps uploaded spreadsheets at 10MB.
const maxUploadSize = 10 << 20

// importAssets ingests a CSV/Excel upload through the full pipeline:
// parse → schema check → row validation → bulk load with partial success.
func (r *Router) importAssets(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadSize)
	if err := req.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "File too large or malformed upload")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	rows, err := importer.Parse(data, header.Filename)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) {
			respondError(w, http.StatusBadRequest, "Unsupported file format. Only CSV and Excel files are allowed.")
			return
		}
		var parseErr *importer.ParseError
		if errors.As(err, &parseErr) {
			respondError(w, http.StatusBadRequest, parseErr.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := importer.ValidateSchema(rows); err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			respondError(w, http.StatusBadRequest, "File is empty or contains no data")
			return
		}
		var schemaErr *importer.SchemaError
		if errors.As(err, &schemaErr) {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Schema validation failed",
				"details": schemaErr.Problems,
			})
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if validation := importer.ValidateRows(rows); !validation.Valid {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Data validation failed",
			"details": validation.Errors,
		})
		return
	}

	result, err := importer.NewLoader(r.db.DB).Load(rows)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to import data")
		return
	}
	if result.Failed() {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Import failed",
			"details": result.Errors,
			"count":   0,
		})
		return
	}

	payload := map[string]interface{}{
		"message": fmt.Sprintf("Successfully imported %d out of %d assets", result.Count, result.Total),
		"count":   result.Count,
		"total":   result.Total,
	}
	if len(result.Errors) > 0 {
		payload["errors"] = result.Errors
	}
	respondJSON(w, http.StatusOK, payload)
}

type bulkAssetsRequest struct {
	Assets []map[string]interface{} `json:"assets"`
}

// bulkInsertAssets loads a JSON array of asset objects through the same
// loader as the file import. Column names in the objects are normalized the
// same way spreadsheet headers are.
func (r *Router) bulkInsertAssets(w http.ResponseWriter, req *http.Request) {
	var body bulkAssetsRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(body.Assets) == 0 {
		respondError(w, http.StatusBadRequest, "Invalid request: assets array is required")
		return
	}

	rows := make([]importer.Row, len(body.Assets))
	for i, asset := range body.Assets {
		row := make(importer.Row, len(asset))
		for key, value := range asset {
			if value == nil {
				continue
			}
			row[key] = fmt.Sprint(value)
		}
		rows[i] = row
	}

	result, err := importer.NewLoader(r.db.DB).Load(rows)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error during bulk import")
		return
	}
	if result.Failed() {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Bulk import failed",
			"details": result.Errors,
			"count":   0,
		})
		return
	}

	payload := map[string]interface{}{
		"message": fmt.Sprintf("Successfully imported %d out of %d assets", result.Count, result.Total),
		"count":   result.Count,
	}
	if len(result.Errors) > 0 {
		payload["errors"] = result.Errors
	}
	respondJSON(w, http.StatusCreated, payload)
}
