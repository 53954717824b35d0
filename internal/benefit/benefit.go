package benefit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coverdesk/api-operations/internal/apperrors"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Benefit is reference data: a product type offered under policies (health,
// dental, life, disability...).
type Benefit struct {
	gorm.Model
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Category    string `gorm:"size:100" json:"category"`
	Description string `json:"description"`
	Active      bool   `gorm:"default:true" json:"active"`
}

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var list []Benefit
	q := h.DB.Order("name")
	if r.URL.Query().Get("active") == "true" {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&list).Error; err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var b Benefit
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if b.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if err := h.DB.Create(&b).Error; err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var existing Benefit
	if err := h.DB.First(&existing, id).Error; err != nil {
		apperrors.Respond(w, err)
		return
	}
	var changes Benefit
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	existing.Name = changes.Name
	existing.Category = changes.Category
	existing.Description = changes.Description
	existing.Active = changes.Active
	if err := h.DB.Save(&existing).Error; err != nil {
		apperrors.Respond(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}
