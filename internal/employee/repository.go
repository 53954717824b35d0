package employee

import (
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Employee, error)
	ListByCompany(db *gorm.DB, companyID uint) ([]Employee, error)
	GetByID(db *gorm.DB, id uint) (*Employee, error)
	Save(db *gorm.DB, e *Employee) error
	Update(db *gorm.DB, id uint, changes *Employee) (*Employee, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Employee, error) {
	var list []Employee
	err := db.Scopes(opts.Scope("name", "email", "department")).Order("name").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByCompany(db *gorm.DB, companyID uint) ([]Employee, error) {
	var list []Employee
	err := db.Where("company_id = ?", companyID).Order("name").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Employee, error) {
	var e Employee
	err := db.First(&e, id).Error
	return &e, err
}

func (r *repositoryImpl) Save(db *gorm.DB, e *Employee) error {
	return db.Create(e).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Employee) (*Employee, error) {
	var existing Employee
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.Name = changes.Name
	existing.Email = changes.Email
	existing.DateOfBirth = changes.DateOfBirth
	existing.Salary = changes.Salary
	existing.Department = changes.Department
	existing.JobTitle = changes.JobTitle
	existing.HireDate = changes.HireDate
	existing.Dependents = changes.Dependents
	if changes.Status != "" {
		existing.Status = changes.Status
	}
	if changes.CompanyID != 0 {
		existing.CompanyID = changes.CompanyID
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
