package deal

import (
	"time"

	"gorm.io/gorm"
)

// Pipeline stages, in funnel order.
const (
	StageLead        = "lead"
	StageQualified   = "qualified"
	StageQuote       = "quote"
	StageNegotiation = "negotiation"
	StageClosedWon   = "closed_won"
	StageClosedLost  = "closed_lost"
)

// Deal is a sales opportunity for a company, optionally linked to a quote.
type Deal struct {
	gorm.Model
	CompanyID         uint       `gorm:"not null;index" json:"companyId"`
	QuoteID           *uint      `gorm:"index" json:"quoteId,omitempty"`
	Stage             string     `gorm:"size:50;default:'lead';index" json:"stage"`
	Value             float64    `json:"value"`
	Probability       int        `json:"probability"`
	AssignedTo        uint       `json:"assignedTo"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate"`
}

func ValidStage(s string) bool {
	switch s {
	case StageLead, StageQualified, StageQuote, StageNegotiation, StageClosedWon, StageClosedLost:
		return true
	}
	return false
}
