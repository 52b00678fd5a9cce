package repository

import (
	"errors"
	"office-key-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeeklyPatternRepository interface {
	GetByEmployee(name string) (*models.WeeklyPattern, error)
	GetAll() ([]models.WeeklyPattern, error)
	Upsert(pattern *models.WeeklyPattern) error
	DeleteByEmployee(name string) error
}

type GormWeeklyPatternRepository struct {
	db *gorm.DB
}

func NewGormWeeklyPatternRepository(db *gorm.DB) (WeeklyPatternRepository, error) {
	if err := db.AutoMigrate(&models.WeeklyPattern{}); err != nil {
		return nil, err
	}
	return &GormWeeklyPatternRepository{db: db}, nil
}

func (r *GormWeeklyPatternRepository) GetByEmployee(name string) (*models.WeeklyPattern, error) {
	var pattern models.WeeklyPattern
	err := r.db.Where("employee_name = ?", name).First(&pattern).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}

func (r *GormWeeklyPatternRepository) GetAll() ([]models.WeeklyPattern, error) {
	var patterns []models.WeeklyPattern
	err := r.db.Order("employee_name ASC").Find(&patterns).Error
	return patterns, err
}

// Upsert полностью замещает прежний шаблон сотрудника
func (r *GormWeeklyPatternRepository) Upsert(pattern *models.WeeklyPattern) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"monday", "tuesday", "wednesday", "thursday", "friday", "updated_at",
		}),
	}).Create(pattern).Error
}

func (r *GormWeeklyPatternRepository) DeleteByEmployee(name string) error {
	return r.db.Where("employee_name = ?", name).Delete(&models.WeeklyPattern{}).Error
}
