package commission

import (
	"time"

	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Commission, error)
	ListByDeal(db *gorm.DB, dealID uint) ([]Commission, error)
	GetByID(db *gorm.DB, id uint) (*Commission, error)
	Save(db *gorm.DB, c *Commission) error
	SetStatus(db *gorm.DB, id uint, status string, payoutDate *time.Time) error
	MarkInstallmentPaid(db *gorm.DB, installmentID uint, paidDate time.Time) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Commission, error) {
	var list []Commission
	err := db.Scopes(opts.Scope()).Preload("Installments").Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByDeal(db *gorm.DB, dealID uint) ([]Commission, error) {
	var list []Commission
	err := db.Where("deal_id = ?", dealID).Preload("Installments").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Commission, error) {
	var c Commission
	err := db.Preload("Installments").First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) Save(db *gorm.DB, c *Commission) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) SetStatus(db *gorm.DB, id uint, status string, payoutDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if payoutDate != nil {
		updates["payout_date"] = payoutDate
	}
	res := db.Model(&Commission{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) MarkInstallmentPaid(db *gorm.DB, installmentID uint, paidDate time.Time) error {
	res := db.Model(&Installment{}).Where("id = ?", installmentID).Updates(map[string]interface{}{
		"status":    StatusPaid,
		"paid_date": paidDate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Commission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
