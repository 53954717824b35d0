package profile

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the 1:1 record behind an authenticated identity. Role gates
// which routes and rows a session may reach.
type Profile struct {
	gorm.Model
	UserID            string                 `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Email             string                 `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash      string                 `gorm:"size:255;not null" json:"-"`
	FullName          string                 `gorm:"size:255" json:"fullName"`
	Phone             string                 `gorm:"size:50" json:"phone"`
	Role              string                 `gorm:"size:20;not null" json:"role"`
	CompanyID         *uint                  `gorm:"index" json:"companyId,omitempty"`
	Preferences       map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"preferences"`
	CreatedBy         string                 `gorm:"size:255" json:"createdBy"`
	MustResetPassword bool                   `json:"-"`
}

// PasswordReset is an outstanding reset token, delivered out of band.
type PasswordReset struct {
	gorm.Model
	ProfileID uint       `gorm:"not null;index" json:"profileId"`
	Token     string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
}
