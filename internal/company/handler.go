package company

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coverdesk/api-operations/internal/apperrors"
	"github.com/coverdesk/api-operations/internal/cache"
	"github.com/coverdesk/api-operations/internal/notify"
	"github.com/coverdesk/api-operations/internal/query"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const cacheTag = "companies"

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Cache      *cache.Cache
	Notifier   *notify.Notifier
}

func NewHandler(db *gorm.DB, c *cache.Cache, n *notify.Notifier) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Cache: c, Notifier: n}
}

// List returns companies matching the query options, via the read-through cache.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.FromRequest(r, "status", "industry", "country")
	var list []Company
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
	var c Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	if !ValidStatus(c.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if _, err := h.Repository.GetByName(h.DB, c.Name); err == nil {
		h.Notifier.DuplicateCompanyAlert(c.Name)
	}

	if err := h.Repository.Save(h.DB, &c); err != nil {
		apperrors.RespondOp(w, err, apperrors.OpClientCreate)
		return
	}
	h.Cache.Invalidate(cacheTag)
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
	var changes Company
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
		apperrors.RespondOp(w, err, apperrors.OpClientUpdate)
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
