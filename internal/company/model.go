package company

import "gorm.io/gorm"

// Company statuses.
const (
	StatusActive   = "active"
	StatusPending  = "pending"
	StatusInactive = "inactive"
)

// Company is a client organization.
type Company struct {
	gorm.Model
	Name          string `gorm:"size:255;not null" json:"name"`
	Industry      string `gorm:"size:100" json:"industry"`
	EmployeeCount int    `json:"employeeCount"`
	Country       string `gorm:"size:100" json:"country"`
	PayrollID     string `gorm:"size:100" json:"payrollId"`
	CRMID         string `gorm:"size:100" json:"crmId"`
	Status        string `gorm:"size:50;default:'pending'" json:"status"`
}

// ValidStatus reports whether s is an allowed company status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusPending, StatusInactive:
		return true
	}
	return false
}
