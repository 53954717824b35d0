package quote

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Quote statuses.
const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusExpired  = "expired"
)

// Quote is a priced offer for a company, optionally tied to a provider.
type Quote struct {
	gorm.Model
	Reference     string     `gorm:"size:40;uniqueIndex" json:"reference"`
	CompanyID     uint       `gorm:"not null;index" json:"companyId"`
	ProviderID    *uint      `gorm:"index" json:"providerId,omitempty"`
	ProductType   string     `gorm:"size:100" json:"productType"`
	Premium       float64    `json:"premium"`
	EmployeeCount int        `json:"employeeCount"`
	Status        string     `gorm:"size:50;default:'draft';index" json:"status"`
	ValidUntil    *time.Time `json:"validUntil"`
}

// NewReference returns a collision-resistant quote reference.
func NewReference() string {
	return "Q-" + ulid.Make().String()
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}
