package employee

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coverdesk/api-operations/internal/apperrors"
	"github.com/coverdesk/api-operations/internal/cache"
	"github.com/coverdesk/api-operations/internal/query"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const cacheTag = "employees"

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Cache      *cache.Cache
}

func NewHandler(db *gorm.DB, c *cache.Cache) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Cache: c}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.FromRequest(r, "status", "department", "company_id")
	var list []Employee
	err := h.Cache.Fetch(r.Context(), cache.Key(cacheTag, opts), &list, func() (interface{}, error) {
		return h.Repository.List(h.DB, opts)
	})
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// ListByCompany returns all employees of one company, uncached.
func (h *Handler) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListByCompany(h.DB, uint(companyID))
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
	e, err := h.Repository.GetByID(h.DB, uint(id))
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var e Employee
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if e.CompanyID == 0 {
		http.Error(w, "companyId is required", http.StatusBadRequest)
		return
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	if !ValidStatus(e.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Save(h.DB, &e); err != nil {
		apperrors.Respond(w, err)
		return
	}
	h.Cache.Invalidate(cacheTag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var changes Employee
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
