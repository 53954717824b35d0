package renewal

import (
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Renewal, error)
	ListByPolicy(db *gorm.DB, policyID uint) ([]Renewal, error)
	GetByID(db *gorm.DB, id uint) (*Renewal, error)
	Save(db *gorm.DB, n *Renewal) error
	Update(db *gorm.DB, id uint, changes *Renewal) (*Renewal, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Renewal, error) {
	var list []Renewal
	err := db.Scopes(opts.Scope()).Order("renewal_date").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByPolicy(db *gorm.DB, policyID uint) ([]Renewal, error) {
	var list []Renewal
	err := db.Where("policy_id = ?", policyID).Order("renewal_date").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Renewal, error) {
	var n Renewal
	err := db.First(&n, id).Error
	return &n, err
}

func (r *repositoryImpl) Save(db *gorm.DB, n *Renewal) error {
	return db.Create(n).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Renewal) (*Renewal, error) {
	var existing Renewal
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.CurrentPremium = changes.CurrentPremium
	existing.RenewalPremium = changes.RenewalPremium
	existing.RenewalDate = changes.RenewalDate
	if changes.Status != "" {
		existing.Status = changes.Status
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Renewal{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
