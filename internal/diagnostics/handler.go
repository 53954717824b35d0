package diagnostics

import (
	"encoding/json"
	"net/http"

	"github.com/coverdesk/api-operations/internal/database"
	"gorm.io/gorm"
)

type Handler struct {
	Store *database.Store
}

func NewHandler(store *database.Store) *Handler {
	return &Handler{Store: store}
}

// CheckTables reports per-table existence for the expected schema.
func (h *Handler) CheckTables(w http.ResponseWriter, r *http.Request) {
	db := h.Store.App
	if h.Store.HasServiceRole() {
		// The probe should see the whole schema, not just RLS-visible rows.
		db = h.Store.Service
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CheckTables(db, ExpectedTables))
}

// MissingTableSQL returns CREATE TABLE statements for every table the probe
// reports missing, as text for manual execution.
func (h *Handler) MissingTableSQL(w http.ResponseWriter, r *http.Request) {
	db := h.Store.App
	if h.Store.HasServiceRole() {
		db = h.Store.Service
	}
	var missing []string
	for _, st := range CheckTables(db, ExpectedTables) {
		if !st.Exists && HasDDL(st.Table) {
			missing = append(missing, st.Table)
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(GenerateSQL(missing)))
}

// Ping verifies the database connections are alive.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"app":         pingHandle(h.Store.App),
		"serviceRole": h.Store.HasServiceRole(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func pingHandle(db *gorm.DB) string {
	sqlDB, err := db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
