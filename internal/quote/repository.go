package quote

import (
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Quote, error)
	ListByCompany(db *gorm.DB, companyID uint) ([]Quote, error)
	GetByID(db *gorm.DB, id uint) (*Quote, error)
	Save(db *gorm.DB, q *Quote) error
	Update(db *gorm.DB, id uint, changes *Quote) (*Quote, error)
	SetStatus(db *gorm.DB, id uint, status string) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Quote, error) {
	var list []Quote
	err := db.Scopes(opts.Scope("reference", "product_type")).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByCompany(db *gorm.DB, companyID uint) ([]Quote, error) {
	var list []Quote
	err := db.Where("company_id = ?", companyID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Quote, error) {
	var q Quote
	err := db.First(&q, id).Error
	return &q, err
}

func (r *repositoryImpl) Save(db *gorm.DB, q *Quote) error {
	return db.Create(q).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Quote) (*Quote, error) {
	var existing Quote
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.ProductType = changes.ProductType
	existing.Premium = changes.Premium
	existing.EmployeeCount = changes.EmployeeCount
	existing.ValidUntil = changes.ValidUntil
	if changes.ProviderID != nil {
		existing.ProviderID = changes.ProviderID
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) SetStatus(db *gorm.DB, id uint, status string) error {
	return db.Model(&Quote{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Quote{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
