package country

import (
	"encoding/json"
	"net/http"

	"github.com/coverdesk/api-operations/internal/apperrors"
	"gorm.io/gorm"
)

// Country is reference data: an operating country with its regulatory flag.
type Country struct {
	gorm.Model
	Code      string `gorm:"size:2;uniqueIndex;not null" json:"code"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Currency  string `gorm:"size:3" json:"currency"`
	Regulated bool   `gorm:"default:true" json:"regulated"`
}

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var list []Country
	if err := h.DB.Order("name").Find(&list).Error; err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Create is admin-only route wiring; reference rows change rarely.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c Country
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if len(c.Code) != 2 || c.Name == "" {
		http.Error(w, "code (2 letters) and name are required", http.StatusBadRequest)
		return
	}
	if err := h.DB.Create(&c).Error; err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}
