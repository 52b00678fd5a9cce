package repository

import (
	"time"

	"office-key-tracker/internal/models"

	"gorm.io/gorm"
)

type AbsenceRepository interface {
	// CreateIgnoreDuplicate вставляет запись об отсутствии.
	// Возвращает false без ошибки, если такая запись уже есть.
	CreateIgnoreDuplicate(absence *models.Absence) (bool, error)
	DeleteByEmployeeAndDate(name string, date time.Time) (bool, error)
	GetNamesByDate(date time.Time) ([]string, error)
	GetUpcomingByEmployee(name string, from time.Time) ([]string, error)
	GetAllFrom(from time.Time) ([]models.Absence, error)
	DeleteBefore(cutoff time.Time) (int64, error)
}

type GormAbsenceRepository struct {
	db *gorm.DB
}

func NewGormAbsenceRepository(db *gorm.DB) (AbsenceRepository, error) {
	if err := db.AutoMigrate(&models.Absence{}); err != nil {
		return nil, err
	}
	return &GormAbsenceRepository{db: db}, nil
}

func (r *GormAbsenceRepository) CreateIgnoreDuplicate(absence *models.Absence) (bool, error) {
	err := r.db.Create(absence).Error
	if isUniqueConstraintError(err) {
		// Запись уже есть - повторная пометка идемпотентна
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormAbsenceRepository) DeleteByEmployeeAndDate(name string, date time.Time) (bool, error) {
	result := r.db.Where("employee_name = ? AND date = ?", name, models.FormatDate(date)).
		Delete(&models.Absence{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetNamesByDate возвращает имена всех отсутствующих в указанный день
func (r *GormAbsenceRepository) GetNamesByDate(date time.Time) ([]string, error) {
	var names []string
	err := r.db.Model(&models.Absence{}).
		Where("date = ?", models.FormatDate(date)).
		Order("employee_name ASC").
		Pluck("employee_name", &names).Error
	return names, err
}

// GetUpcomingByEmployee возвращает будущие даты отсутствий по возрастанию
func (r *GormAbsenceRepository) GetUpcomingByEmployee(name string, from time.Time) ([]string, error) {
	var dates []string
	err := r.db.Model(&models.Absence{}).
		Where("employee_name = ? AND date >= ?", name, models.FormatDate(from)).
		Order("date ASC").
		Pluck("date", &dates).Error
	return dates, err
}

func (r *GormAbsenceRepository) GetAllFrom(from time.Time) ([]models.Absence, error) {
	var absences []models.Absence
	err := r.db.Where("date >= ?", models.FormatDate(from)).
		Order("date ASC, employee_name ASC").
		Find(&absences).Error
	return absences, err
}

func (r *GormAbsenceRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("date < ?", models.FormatDate(cutoff)).Delete(&models.Absence{})
	return result.RowsAffected, result.Error
}
