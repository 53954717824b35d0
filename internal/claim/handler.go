package claim

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

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
	opts := query.FromRequest(r, "status", "policy_id", "claim_type")
	list, err := h.Repository.List(h.DB, opts)
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) ListByPolicy(w http.ResponseWriter, r *http.Request) {
	policyID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListByPolicy(h.DB, uint(policyID))
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
	c, err := h.Repository.GetByID(h.DB, uint(id))
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c Claim
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if c.PolicyID == 0 {
		http.Error(w, "policyId is required", http.StatusBadRequest)
		return
	}
	if c.Status == "" {
		c.Status = StatusSubmitted
	}
	if !ValidStatus(c.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	c.Reference = NewReference()
	if c.SubmittedDate == nil {
		now := time.Now()
		c.SubmittedDate = &now
	}
	if err := h.Repository.Save(h.DB, &c); err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var changes Claim
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if changes.Status != "" && !ValidStatus(changes.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
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
