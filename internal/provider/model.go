package provider

import "gorm.io/gorm"

// Provider types.
const (
	TypeInsurer = "insurer"
	TypeBroker  = "broker"
)

// Provider is an insurer or broker whose products back quotes and policies.
type Provider struct {
	gorm.Model
	Name       string   `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Type       string   `gorm:"size:50;not null" json:"type"`
	Country    string   `gorm:"size:100" json:"country"`
	Products   []string `gorm:"type:jsonb;serializer:json" json:"products"`
	APIEnabled bool     `json:"apiEnabled"`
	Status     string   `gorm:"size:50;default:'active'" json:"status"`
}

func ValidType(t string) bool {
	return t == TypeInsurer || t == TypeBroker
}
