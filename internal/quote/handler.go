package quote

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coverdesk/api-operations/internal/apperrors"
	"github.com/coverdesk/api-operations/internal/auth"
	"github.com/coverdesk/api-operations/internal/cache"
	"github.com/coverdesk/api-operations/internal/query"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const cacheTag = "quotes"

type statusRequest struct {
	Status string `json:"status"`
}

type Handler struct {
	DB      *gorm.DB
	Service *Service
	Cache   *cache.Cache
}

func NewHandler(db *gorm.DB, c *cache.Cache) *Handler {
	return &Handler{DB: db, Service: NewService(), Cache: c}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.FromRequest(r, "status", "company_id", "product_type")
	var list []Quote
	err := h.Cache.Fetch(r.Context(), cache.Key(cacheTag, opts), &list, func() (interface{}, error) {
		return h.Service.Quotes.List(h.DB, opts)
	})
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
	q, err := h.Service.Quotes.GetByID(h.DB, uint(id))
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(q)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var q Quote
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if q.CompanyID == 0 {
		http.Error(w, "companyId is required", http.StatusBadRequest)
		return
	}
	if q.Status == "" {
		q.Status = StatusDraft
	}
	if !ValidStatus(q.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	q.Reference = NewReference()
	if err := h.Service.Quotes.Save(h.DB, &q); err != nil {
		apperrors.Respond(w, err)
		return
	}
	h.Cache.Invalidate(cacheTag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(q)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var changes Quote
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	updated, err := h.Service.Quotes.Update(h.DB, uint(id), &changes)
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	h.Cache.Invalidate(cacheTag)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// UpdateStatus applies a status transition with its side effects (audit
// record, linked deal stage).
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	updated, err := h.Service.UpdateStatus(h.DB, uint(id), req.Status, auth.UserID(r))
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
	if err := h.Service.Quotes.Delete(h.DB, uint(id)); err != nil {
		apperrors.Respond(w, err)
		return
	}
	h.Cache.Invalidate(cacheTag)
	w.WriteHeader(http.StatusNoContent)
}
