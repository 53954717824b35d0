package commission

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

type createRequest struct {
	DealID       uint    `json:"dealId"`
	Premium      float64 `json:"premium"`
	Rate         float64 `json:"rate"`
	Installments int     `json:"installments"`
	ScheduleFrom string  `json:"scheduleFrom"` // YYYY-MM-DD, defaults to today
}

type statusRequest struct {
	Status     string `json:"status"`
	PayoutDate string `json:"payoutDate"` // YYYY-MM-DD, optional
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.FromRequest(r, "status", "deal_id")
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
	c, err := h.Repository.GetByID(h.DB, uint(id))
	if err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Create calculates the amount from premium and rate and, when installments
// is set, generates the payout schedule alongside.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.DealID == 0 {
		http.Error(w, "dealId is required", http.StatusBadRequest)
		return
	}
	if req.Rate < 0 || req.Rate > 1 {
		http.Error(w, "rate must be between 0 and 1", http.StatusBadRequest)
		return
	}
	if req.Premium < 0 {
		http.Error(w, "premium must not be negative", http.StatusBadRequest)
		return
	}

	c := Commission{DealID: req.DealID, Premium: req.Premium, Rate: req.Rate, Status: StatusPending}
	if req.Installments > 0 {
		start := time.Now()
		if req.ScheduleFrom != "" {
			parsed, err := time.Parse("2006-01-02", req.ScheduleFrom)
			if err != nil {
				http.Error(w, "invalid scheduleFrom date", http.StatusBadRequest)
				return
			}
			start = parsed
		}
		c.Installments = c.BuildSchedule(req.Installments, start)
		c.Status = StatusCalculated
	} else {
		c.Amount = c.Premium * c.Rate
	}

	if err := h.Repository.Save(h.DB, &c); err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

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
	if !ValidStatus(req.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}
	var payout *time.Time
	if req.PayoutDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PayoutDate)
		if err != nil {
			http.Error(w, "invalid payoutDate", http.StatusBadRequest)
			return
		}
		payout = &parsed
	}
	if err := h.Repository.SetStatus(h.DB, uint(id), req.Status, payout); err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// PayInstallment marks one schedule row as paid.
func (h *Handler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["installmentId"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Repository.MarkInstallmentPaid(h.DB, uint(id), time.Now()); err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
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
