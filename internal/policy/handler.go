package policy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coverdesk/api-operations/internal/apperrors"
	"github.com/coverdesk/api-operations/internal/cache"
	"github.com/coverdesk/api-operations/internal/query"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const cacheTag = "policies"

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Cache      *cache.Cache
}

func NewHandler(db *gorm.DB, c *cache.Cache) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Cache: c}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.FromRequest(r, "policies.status", "policies.company_id", "policies.product_type")
	var rows []ListRow
	err := h.Cache.Fetch(r.Context(), cache.Key(cacheTag, opts), &rows, func() (interface{}, error) {
		return h.Repository.List(h.DB, opts)
	})
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.GetByID(h.DB, uint(id))
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p Policy
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if p.CompanyID == 0 {
		http.Error(w, "companyId is required", http.StatusBadRequest)
		return
	}
	if p.Status == "" {
		p.Status = StatusPendingApproval
	}
	if !ValidStatus(p.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	if p.PolicyNumber == "" {
		p.PolicyNumber = fmt.Sprintf("POL-%d-%d", p.CompanyID, time.Now().Year())
	}
	if err := h.Repository.Save(h.DB, &p); err != nil {
		apperrors.Respond(w, err)
		return
	}
	h.Cache.Invalidate(cacheTag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var changes Policy
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
	h.Cache.Invalidate(cacheTag)
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
	h.Cache.Invalidate(cacheTag)
	w.WriteHeader(http.StatusNoContent)
}
