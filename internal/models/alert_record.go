package models

import "time"

// AlertRecord - запись о том, что для даты уже отправлялось оповещение
// "нет ключников". FollowupSent = true, если после оповещения кто-то
// снова стал доступен и было отправлено письмо "change of plans".
// Уникальность по AlertDate - это и есть защита от дублей.
type AlertRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AlertDate    string    `gorm:"type:text;uniqueIndex;not null" json:"alert_date"`
	SentAt       time.Time `gorm:"not null" json:"sent_at"`
	FollowupSent bool      `gorm:"not null;default:false" json:"followup_sent"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AlertRecord) TableName() string {
	return "alert_records"
}
