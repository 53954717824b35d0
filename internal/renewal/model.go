package renewal

import (
	"time"

	"gorm.io/gorm"
)

// Renewal statuses.
const (
	StatusUpcoming   = "upcoming"
	StatusInProgress = "in_progress"
	StatusQuoted     = "quoted"
	StatusRenewed    = "renewed"
	StatusLapsed     = "lapsed"
)

type Renewal struct {
	gorm.Model
	PolicyID       uint       `gorm:"not null;index" json:"policyId"`
	CurrentPremium float64    `json:"currentPremium"`
	RenewalPremium float64    `json:"renewalPremium"`
	Status         string     `gorm:"size:50;default:'upcoming';index" json:"status"`
	RenewalDate    *time.Time `json:"renewalDate"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusInProgress, StatusQuoted, StatusRenewed, StatusLapsed:
		return true
	}
	return false
}
