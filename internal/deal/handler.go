package deal

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coverdesk/api-operations/internal/apperrors"
	"github.com/coverdesk/api-operations/internal/query"
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.FromRequest(r, "stage", "company_id", "assigned_to")
	list, err := h.Repository.List(h.DB, opts)
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	d, err := h.Repository.GetByID(h.DB, uint(id))
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var d Deal
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if d.CompanyID == 0 {
		http.Error(w, "companyId is required", http.StatusBadRequest)
		return
	}
	if d.Stage == "" {
		d.Stage = StageLead
	}
	if !ValidStage(d.Stage) {
		http.Error(w, "invalid stage", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Save(h.DB, &d); err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var changes Deal
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if changes.Stage != "" && !ValidStage(changes.Stage) {
		http.Error(w, "invalid stage", http.StatusBadRequest)
		return
	}
	updated, err := h.Repository.Update(h.DB, uint(id), &changes)
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
