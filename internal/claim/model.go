package claim

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Claim statuses.
const (
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
	StatusPaid        = "paid"
)

type Claim struct {
	gorm.Model
	Reference     string     `gorm:"size:40;uniqueIndex" json:"reference"`
	PolicyID      uint       `gorm:"not null;index" json:"policyId"`
	EmployeeID    uint       `gorm:"index" json:"employeeId"`
	ClaimType     string     `gorm:"size:100" json:"claimType"`
	Amount        float64    `json:"amount"`
	Status        string     `gorm:"size:50;default:'submitted';index" json:"status"`
	SubmittedDate *time.Time `json:"submittedDate"`
	Description   string     `json:"description"`
}

// NewReference returns a collision-resistant claim reference.
func NewReference() string {
	return "CLM-" + ulid.Make().String()
}

func ValidStatus(s string) bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusPaid:
		return true
	}
	return false
}
