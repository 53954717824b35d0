package deal

import (
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Deal, error)
	ListByCompany(db *gorm.DB, companyID uint) ([]Deal, error)
	GetByID(db *gorm.DB, id uint) (*Deal, error)
	GetByQuote(db *gorm.DB, quoteID uint) (*Deal, error)
	Save(db *gorm.DB, d *Deal) error
	Update(db *gorm.DB, id uint, changes *Deal) (*Deal, error)
	SetStage(db *gorm.DB, id uint, stage string) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Deal, error) {
	var list []Deal
	err := db.Scopes(opts.Scope()).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByCompany(db *gorm.DB, companyID uint) ([]Deal, error) {
	var list []Deal
	err := db.Where("company_id = ?", companyID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Deal, error) {
	var d Deal
	err := db.First(&d, id).Error
	return &d, err
}

func (r *repositoryImpl) GetByQuote(db *gorm.DB, quoteID uint) (*Deal, error) {
	var d Deal
	err := db.Where("quote_id = ?", quoteID).First(&d).Error
	return &d, err
}

func (r *repositoryImpl) Save(db *gorm.DB, d *Deal) error {
	return db.Create(d).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Deal) (*Deal, error) {
	var existing Deal
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.Value = changes.Value
	existing.Probability = changes.Probability
	existing.AssignedTo = changes.AssignedTo
	existing.ExpectedCloseDate = changes.ExpectedCloseDate
	if changes.Stage != "" {
		existing.Stage = changes.Stage
	}
	if changes.QuoteID != nil {
		existing.QuoteID = changes.QuoteID
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) SetStage(db *gorm.DB, id uint, stage string) error {
	return db.Model(&Deal{}).Where("id = ?", id).Update("stage", stage).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Deal{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
