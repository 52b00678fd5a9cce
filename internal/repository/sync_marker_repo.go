package repository

import (
	"time"

	"office-key-tracker/internal/models"

	"gorm.io/gorm"
)

type SyncMarkerRepository interface {
	// TryCreate вставляет отметку о выполнении задачи.
	// false означает, что задача за этот период уже применена.
	TryCreate(syncKey string) (bool, error)
	DeleteBefore(cutoff time.Time) (int64, error)
}

type GormSyncMarkerRepository struct {
	db *gorm.DB
}

func NewGormSyncMarkerRepository(db *gorm.DB) (SyncMarkerRepository, error) {
	if err := db.AutoMigrate(&models.SyncMarker{}); err != nil {
		return nil, err
	}
	return &GormSyncMarkerRepository{db: db}, nil
}

func (r *GormSyncMarkerRepository) TryCreate(syncKey string) (bool, error) {
	marker := &models.SyncMarker{SyncKey: syncKey}
	err := r.db.Create(marker).Error
	if isUniqueConstraintError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormSyncMarkerRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.SyncMarker{})
	return result.RowsAffected, result.Error
}
