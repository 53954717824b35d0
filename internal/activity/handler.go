package activity

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coverdesk/api-operations/internal/apperrors"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// ListForEntity returns the audit trail for one entity, newest first.
func (h *Handler) ListForEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListForEntity(h.DB, vars["entity"], uint(entityID))
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
