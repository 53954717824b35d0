package customer

import "gorm.io/gorm"

// Customer is a contact person at a client company.
type Customer struct {
	gorm.Model
	CompanyID uint   `gorm:"not null;index" json:"companyId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`
	Position  string `gorm:"size:100" json:"position"`
	Primary   bool   `gorm:"default:false" json:"primary"`
}
