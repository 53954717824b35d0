package activity

import "gorm.io/gorm"

type Repository interface {
	Save(db *gorm.DB, a *Activity) error
	ListForEntity(db *gorm.DB, entityType string, entityID uint) ([]Activity, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Save(db *gorm.DB, a *Activity) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) ListForEntity(db *gorm.DB, entityType string, entityID uint) ([]Activity, error) {
	var list []Activity
	err := db.
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Activity{}, id).Error
}
