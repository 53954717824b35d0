package commission

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Commission statuses.
const (
	StatusPending    = "pending"
	StatusCalculated = "calculated"
	StatusApproved   = "approved"
	StatusPaid       = "paid"
)

// Commission is the broker commission attached to a deal. Amount is derived
// from Premium and Rate when the schedule is calculated.
type Commission struct {
	gorm.Model
	DealID       uint          `gorm:"not null;index" json:"dealId"`
	Premium      float64       `json:"premium"`
	Rate         float64       `json:"rate"` // fraction, 0-1
	Amount       float64       `json:"amount"`
	Status       string        `gorm:"size:50;default:'pending';index" json:"status"`
	PayoutDate   *time.Time    `json:"payoutDate"`
	Installments []Installment `gorm:"foreignKey:CommissionID;constraint:OnDelete:CASCADE" json:"installments"`
}

// Installment is one row of a commission payout schedule.
type Installment struct {
	gorm.Model
	CommissionID uint       `gorm:"not null;index" json:"commissionId"`
	Amount       float64    `json:"amount"`
	DueDate      time.Time  `json:"dueDate"`
	Status       string     `gorm:"size:50;default:'pending';index" json:"status"`
	PaidDate     *time.Time `json:"paidDate"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCalculated, StatusApproved, StatusPaid:
		return true
	}
	return false
}

// BuildSchedule computes Amount from Premium*Rate and generates count equal
// monthly installments starting at start. The last installment absorbs the
// rounding remainder.
func (c *Commission) BuildSchedule(count int, start time.Time) []Installment {
	c.Amount = round2(c.Premium * c.Rate)
	if count < 1 {
		return nil
	}
	per := round2(c.Amount / float64(count))
	out := make([]Installment, count)
	var allocated float64
	for i := 0; i < count; i++ {
		amount := per
		if i == count-1 {
			amount = round2(c.Amount - allocated)
		}
		allocated = round2(allocated + per)
		out[i] = Installment{
			Amount:  amount,
			DueDate: start.AddDate(0, i, 0),
			Status:  StatusPending,
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
