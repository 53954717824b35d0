package customer

import (
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Customer, error)
	ListByCompany(db *gorm.DB, companyID uint) ([]Customer, error)
	GetByID(db *gorm.DB, id uint) (*Customer, error)
	Save(db *gorm.DB, c *Customer) error
	Update(db *gorm.DB, id uint, changes *Customer) (*Customer, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Customer, error) {
	var list []Customer
	err := db.Scopes(opts.Scope("name", "email")).Order("name").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByCompany(db *gorm.DB, companyID uint) ([]Customer, error) {
	var list []Customer
	err := db.Where("company_id = ?", companyID).Order("name").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Customer, error) {
	var c Customer
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) Save(db *gorm.DB, c *Customer) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Customer) (*Customer, error) {
	var existing Customer
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.Name = changes.Name
	existing.Email = changes.Email
	existing.Phone = changes.Phone
	existing.Position = changes.Position
	existing.Primary = changes.Primary
	if changes.CompanyID != 0 {
		existing.CompanyID = changes.CompanyID
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
