package policy

import (
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]ListRow, error)
	ListByCompany(db *gorm.DB, companyID uint) ([]Policy, error)
	GetByID(db *gorm.DB, id uint) (*Policy, error)
	Save(db *gorm.DB, p *Policy) error
	Update(db *gorm.DB, id uint, changes *Policy) (*Policy, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]ListRow, error) {
	var rows []ListRow
	err := db.Model(&Policy{}).
		Select("policies.id, policies.company_id, companies.name AS company_name, "+
			"policies.quote_id, policies.policy_number, policies.product_type, policies.provider, "+
			"policies.premium, policies.status, policies.start_date, policies.end_date, policies.covered_employees").
		Joins("LEFT JOIN companies ON companies.id = policies.company_id").
		Scopes(opts.Scope("policies.policy_number", "companies.name")).
		Order("policies.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repositoryImpl) ListByCompany(db *gorm.DB, companyID uint) ([]Policy, error) {
	var list []Policy
	err := db.Where("company_id = ?", companyID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Policy, error) {
	var p Policy
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) Save(db *gorm.DB, p *Policy) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Policy) (*Policy, error) {
	var existing Policy
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.ProductType = changes.ProductType
	existing.Provider = changes.Provider
	existing.Premium = changes.Premium
	existing.StartDate = changes.StartDate
	existing.EndDate = changes.EndDate
	existing.CoveredEmployees = changes.CoveredEmployees
	if changes.Status != "" {
		existing.Status = changes.Status
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Policy{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
