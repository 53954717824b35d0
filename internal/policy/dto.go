package policy

import "time"

// ListRow is the flattened list shape: the policy plus one level of joined
// parent name.
type ListRow struct {
	ID               uint       `json:"id"`
	CompanyID        uint       `json:"companyId"`
	CompanyName      string     `json:"companyName"`
	QuoteID          *uint      `json:"quoteId,omitempty"`
	PolicyNumber     string     `json:"policyNumber"`
	ProductType      string     `json:"productType"`
	Provider         string     `json:"provider"`
	Premium          float64    `json:"premium"`
	Status           string     `json:"status"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	CoveredEmployees int        `json:"coveredEmployees"`
}
