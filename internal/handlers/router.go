package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/plantops/maintgo/internal/config"
	"github.com/plantops/maintgo/internal/database"
	"github.com/plantops/maintgo/internal/middleware"
	"github.com/plantops/maintgo/internal/ws"
)

// Router wraps the mux router and database
type Router struct {
	*mux.Router
	db        *database.DB
	cfg       *config.Config
	hub       *ws.Hub
	startedAt time.Time
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config) *Router {
	r := &Router{
		Router:    mux.NewRouter(),
		db:        db,
		cfg:       cfg,
		hub:       ws.NewHub(),
		startedAt: time.Now(),
	}
	go r.hub.Run()

	// Diagnostics
	r.HandleFunc("/", r.diagnostics).Methods("GET")
	r.HandleFunc("/api/health", r.healthCheck).Methods("GET")

	// Auth / users
	r.HandleFunc("/api/login", r.login).Methods("POST")
	r.HandleFunc("/api/register", r.register).Methods("POST")
	r.HandleFunc("/api/getRole", r.getRole).Methods("POST")
	r.HandleFunc("/api/users", r.listUsers).Methods("GET")
	r.Handle("/api/me", middleware.AuthMiddleware(cfg.JWTSecret)(http.HandlerFunc(r.me))).Methods("GET")
	r.HandleFunc("/api/profile/stats/{id}", r.profileStats).Methods("GET")

	// Assets. Literal paths must be registered before the {id} matcher.
	r.HandleFunc("/api/assets/counts", r.assetCounts).Methods("GET")
	r.HandleFunc("/api/assets/bulk", r.bulkInsertAssets).Methods("POST")
	r.HandleFunc("/api/assets/import", r.importAssets).Methods("POST")
	r.HandleFunc("/api/assets", r.listAssets).Methods("GET")
	r.HandleFunc("/api/assets", r.createAsset).Methods("POST")
	r.HandleFunc("/api/assets/{id:[0-9]+}", r.getAsset).Methods("GET")
	r.HandleFunc("/api/assets/{id:[0-9]+}", r.updateAsset).Methods("PUT")
	r.HandleFunc("/api/assets/{id:[0-9]+}", r.deleteAsset).Methods("DELETE")
	r.HandleFunc("/api/assets/{id:[0-9]+}/qr", r.assetQRCode).Methods("GET")
	r.HandleFunc("/api/qr/{payload}", r.assetByQR).Methods("GET")

	// Breakdowns
	r.HandleFunc("/api/breakdowns", r.listBreakdowns).Methods("GET")
	r.HandleFunc("/api/breakdowns", r.createBreakdown).Methods("POST")
	r.HandleFunc("/api/breakdowns/{id:[0-9]+}", r.getBreakdown).Methods("GET")
	r.HandleFunc("/api/breakdowns/{id:[0-9]+}", r.updateBreakdown).Methods("PUT")

	// Maintenance logs (breakdown + inventory deduction in one transaction)
	r.HandleFunc("/api/maintenance_logs", r.createMaintenanceLog).Methods("POST")

	// PM schedules
	r.HandleFunc("/api/pm", r.listPMSchedules).Methods("GET")
	r.HandleFunc("/api/pm", r.createPMSchedule).Methods("POST")
	r.HandleFunc("/api/pm/{id:[0-9]+}", r.getPMSchedule).Methods("GET")
	r.HandleFunc("/api/pm/{id:[0-9]+}", r.updatePMSchedule).Methods("PUT")

	// Spare parts
	r.HandleFunc("/api/spares", r.listSpares).Methods("GET")
	r.HandleFunc("/api/spares", r.createSpare).Methods("POST")
	r.HandleFunc("/api/spares/{id:[0-9]+}", r.getSpare).Methods("GET")
	r.HandleFunc("/api/spares/{id:[0-9]+}", r.updateSpare).Methods("PUT")
	r.HandleFunc("/api/spares/{id:[0-9]+}", r.deleteSpare).Methods("DELETE")

	// Utilities monitoring
	r.HandleFunc("/api/utilities", r.listUtilityLogs).Methods("GET")
	r.HandleFunc("/api/utilities", r.createUtilityLog).Methods("POST")

	// Dashboard
	r.HandleFunc("/api/dashboard/stats", r.dashboardStats).Methods("GET")

	// Reports
	r.HandleFunc("/api/reports/assets.pdf", r.assetRegisterPDF).Methods("GET")
	r.HandleFunc("/api/reports/labels.pdf", r.qrLabelSheetPDF).Methods("GET")

	// Live dashboard event feed
	r.HandleFunc("/ws", r.serveWS).Methods("GET")

	return r
}

// Handler returns the router wrapped in the standard middleware chain.
func (r *Router) Handler() http.Handler {
	chain := http.Handler(r.Router)
	chain = middleware.CorsMiddleware(r.cfg.CORSOrigin)(chain)
	chain = middleware.LoggingMiddleware(chain)
	chain = middleware.RecoveryMiddleware(chain)
	return chain
}

func (r *Router) serveWS(w http.ResponseWriter, req *http.Request) {
	ws.ServeWS(r.hub, w, req)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
