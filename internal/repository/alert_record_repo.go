package repository

import (
	"errors"
	"time"

	"office-key-tracker/internal/models"

	"gorm.io/gorm"
)

// AlertRecordRepository - журнал оповещений. TryInsert и SetFollowupSent
// работают как compare-and-swap поверх уникального индекса по дате:
// проигравший в гонке получает false и не шлет дублирующее письмо.
type AlertRecordRepository interface {
	GetByDate(date time.Time) (*models.AlertRecord, error)
	TryInsert(date time.Time, sentAt time.Time) (bool, error)
	SetFollowupSent(date time.Time, from, to bool) (bool, error)
	DeleteBefore(cutoff time.Time) (int64, error)
}

type GormAlertRecordRepository struct {
	db *gorm.DB
}

func NewGormAlertRecordRepository(db *gorm.DB) (AlertRecordRepository, error) {
	if err := db.AutoMigrate(&models.AlertRecord{}); err != nil {
		return nil, err
	}
	return &GormAlertRecordRepository{db: db}, nil
}

func (r *GormAlertRecordRepository) GetByDate(date time.Time) (*models.AlertRecord, error) {
	var record models.AlertRecord
	err := r.db.Where("alert_date = ?", models.FormatDate(date)).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// TryInsert вставляет запись об оповещении. false означает, что запись
// уже существует (конкурентный воркер успел раньше) - это не ошибка.
func (r *GormAlertRecordRepository) TryInsert(date time.Time, sentAt time.Time) (bool, error) {
	record := &models.AlertRecord{
		AlertDate:    models.FormatDate(date),
		SentAt:       sentAt,
		FollowupSent: false,
	}
	err := r.db.Create(record).Error
	if isUniqueConstraintError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetFollowupSent атомарно переводит флаг from -> to.
// false означает, что флаг уже не в состоянии from (переход уже обработан).
func (r *GormAlertRecordRepository) SetFollowupSent(date time.Time, from, to bool) (bool, error) {
	result := r.db.Model(&models.AlertRecord{}).
		Where("alert_date = ? AND followup_sent = ?", models.FormatDate(date), from).
		Update("followup_sent", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormAlertRecordRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("alert_date < ?", models.FormatDate(cutoff)).Delete(&models.AlertRecord{})
	return result.RowsAffected, result.Error
}
