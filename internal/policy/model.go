package policy

import (
	"time"

	"gorm.io/gorm"
)

// Policy statuses.
const (
	StatusPendingApproval = "pending_approval"
	StatusActive          = "active"
	StatusExpired         = "expired"
	StatusCancelled       = "cancelled"
)

type Policy struct {
	gorm.Model
	CompanyID        uint       `gorm:"not null;index" json:"companyId"`
	QuoteID          *uint      `gorm:"index" json:"quoteId,omitempty"`
	PolicyNumber     string     `gorm:"size:100;uniqueIndex" json:"policyNumber"`
	ProductType      string     `gorm:"size:100" json:"productType"`
	Provider         string     `gorm:"size:255" json:"provider"`
	Premium          float64    `json:"premium"`
	Status           string     `gorm:"size:50;default:'pending_approval';index" json:"status"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	CoveredEmployees int        `json:"coveredEmployees"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPendingApproval, StatusActive, StatusExpired, StatusCancelled:
		return true
	}
	return false
}
