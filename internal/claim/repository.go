package claim

import (
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Claim, error)
	ListByPolicy(db *gorm.DB, policyID uint) ([]Claim, error)
	GetByID(db *gorm.DB, id uint) (*Claim, error)
	Save(db *gorm.DB, c *Claim) error
	Update(db *gorm.DB, id uint, changes *Claim) (*Claim, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Claim, error) {
	var list []Claim
	err := db.Scopes(opts.Scope("reference", "claim_type")).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByPolicy(db *gorm.DB, policyID uint) ([]Claim, error) {
	var list []Claim
	err := db.Where("policy_id = ?", policyID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Claim, error) {
	var c Claim
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) Save(db *gorm.DB, c *Claim) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Claim) (*Claim, error) {
	var existing Claim
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.ClaimType = changes.ClaimType
	existing.Amount = changes.Amount
	existing.Description = changes.Description
	if changes.Status != "" {
		existing.Status = changes.Status
	}
	if changes.EmployeeID != 0 {
		existing.EmployeeID = changes.EmployeeID
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Claim{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
