package employee

import (
	"time"

	"gorm.io/gorm"
)

// Employee statuses.
const (
	StatusActive     = "active"
	StatusTerminated = "terminated"
	StatusOnLeave    = "on_leave"
)

type Employee struct {
	gorm.Model
	CompanyID   uint       `gorm:"not null;index" json:"companyId"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Email       string     `gorm:"size:255" json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Salary      float64    `json:"salary"`
	Department  string     `gorm:"size:100" json:"department"`
	JobTitle    string     `gorm:"size:100" json:"jobTitle"`
	HireDate    *time.Time `json:"hireDate"`
	Status      string     `gorm:"size:50;default:'active'" json:"status"`
	Dependents  int        `json:"dependents"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusTerminated, StatusOnLeave:
		return true
	}
	return false
}
