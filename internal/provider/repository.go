package provider

import (
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Provider, error)
	GetByID(db *gorm.DB, id uint) (*Provider, error)
	Save(db *gorm.DB, p *Provider) error
	Update(db *gorm.DB, id uint, changes *Provider) (*Provider, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Provider, error) {
	var list []Provider
	err := db.Scopes(opts.Scope("name")).Order("name").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Provider, error) {
	var p Provider
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) Save(db *gorm.DB, p *Provider) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Provider) (*Provider, error) {
	var existing Provider
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.Name = changes.Name
	existing.Country = changes.Country
	existing.Products = changes.Products
	existing.APIEnabled = changes.APIEnabled
	if changes.Type != "" {
		existing.Type = changes.Type
	}
	if changes.Status != "" {
		existing.Status = changes.Status
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Provider{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
