package profile

import (
	"time"

	"github.com/coverdesk/api-operations/internal/database"
	"github.com/coverdesk/api-operations/internal/query"
	"gorm.io/gorm"
)

type Repository interface {
	List(db *gorm.DB, opts query.Options) ([]Profile, error)
	GetByID(db *gorm.DB, id uint) (*Profile, error)
	GetByEmail(db *gorm.DB, email string) (*Profile, error)
	GetByUserID(db *gorm.DB, userID string) (*Profile, error)
	Save(db *gorm.DB, p *Profile) error
	Update(db *gorm.DB, id uint, changes *Profile) (*Profile, error)
	SetRole(db *gorm.DB, email, role string) error
	SetPassword(db *gorm.DB, id uint, hash string) error
	Delete(db *gorm.DB, id uint) error

	CreateReset(db *gorm.DB, r *PasswordReset) error
	GetReset(db *gorm.DB, token string) (*PasswordReset, error)
	MarkResetUsed(db *gorm.DB, id uint, when time.Time) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) List(db *gorm.DB, opts query.Options) ([]Profile, error) {
	var list []Profile
	err := db.Scopes(opts.Scope("full_name", "email")).Order("email").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*Profile, error) {
	var p Profile
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) GetByEmail(db *gorm.DB, email string) (*Profile, error) {
	var p Profile
	err := db.Where("LOWER(email) = LOWER(?)", email).First(&p).Error
	return &p, err
}

func (r *repositoryImpl) GetByUserID(db *gorm.DB, userID string) (*Profile, error) {
	var p Profile
	err := db.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *repositoryImpl) Save(db *gorm.DB, p *Profile) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, changes *Profile) (*Profile, error) {
	var existing Profile
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	existing.FullName = changes.FullName
	existing.Phone = changes.Phone
	existing.Preferences = changes.Preferences
	if changes.Role != "" {
		existing.Role = changes.Role
	}
	if changes.CompanyID != nil {
		existing.CompanyID = changes.CompanyID
	}
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) SetRole(db *gorm.DB, email, role string) error {
	res := db.Model(&Profile{}).Where("LOWER(email) = LOWER(?)", email).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) SetPassword(db *gorm.DB, id uint, hash string) error {
	return db.Model(&Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash":       hash,
		"must_reset_password": false,
	}).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	res := db.Delete(&Profile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) CreateReset(db *gorm.DB, pr *PasswordReset) error {
	return db.Create(pr).Error
}

func (r *repositoryImpl) GetReset(db *gorm.DB, token string) (*PasswordReset, error) {
	var pr PasswordReset
	err := db.Where("token = ?", token).First(&pr).Error
	return &pr, err
}

func (r *repositoryImpl) MarkResetUsed(db *gorm.DB, id uint, when time.Time) error {
	return db.Model(&PasswordReset{}).Where("id = ?", id).Update("used_at", when).Error
}

// CreateWithServiceRole inserts a profile for a different user than the
// caller, which row-level security hides from the app-role handle. The
// service handle is an explicit capability parameter; without it no query is
// attempted.
func CreateWithServiceRole(svc *gorm.DB, p *Profile) error {
	if svc == nil {
		return database.ErrServiceRoleUnavailable
	}
	return svc.Create(p).Error
}
