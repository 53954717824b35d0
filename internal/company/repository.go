package company

import (
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Company, error)
	GetByID(db *gorm.DB, id uint) (*Company, error)
	GetByName(db *gorm.DB, name string) (*Company, error)
	Save(db *gorm.DB, c *Company) error
	Update(db *gorm.DB, id uint, changes *Company) (*Company, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Company, error) {
	var list []Company
	err := db.Scopes(opts.Scope("name", "industry")).Order("name").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Company, error) {
	var c Company
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) GetByName(db *gorm.DB, name string) (*Company, error) {
	var c Company
	err := db.Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) Save(db *gorm.DB, c *Company) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Company) (*Company, error) {
	var existing Company
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.Name = changes.Name
	existing.Industry = changes.Industry
	existing.EmployeeCount = changes.EmployeeCount
	existing.Country = changes.Country
	existing.PayrollID = changes.PayrollID
	existing.CRMID = changes.CRMID
	if changes.Status != "" {
		existing.Status = changes.Status
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Company{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
