package models

import "time"

// WeeklyPattern - повторяющийся недельный шаблон отсутствий сотрудника.
// Не более одной строки на сотрудника, отсутствие строки = шаблона нет.
type WeeklyPattern struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeName string    `gorm:"uniqueIndex;not null" json:"employee_name"`
	Monday       bool      `gorm:"not null;default:false" json:"monday"`
	Tuesday      bool      `gorm:"not null;default:false" json:"tuesday"`
	Wednesday    bool      `gorm:"not null;default:false" json:"wednesday"`
	Thursday     bool      `gorm:"not null;default:false" json:"thursday"`
	Friday       bool      `gorm:"not null;default:false" json:"friday"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WeeklyPattern) TableName() string {
	return "weekly_patterns"
}

// AbsentOn проверяет, помечен ли день недели в шаблоне.
// Суббота и воскресенье в шаблон не входят.
func (wp *WeeklyPattern) AbsentOn(weekday time.Weekday) bool {
	switch weekday {
	case time.Monday:
		return wp.Monday
	case time.Tuesday:
		return wp.Tuesday
	case time.Wednesday:
		return wp.Wednesday
	case time.Thursday:
		return wp.Thursday
	case time.Friday:
		return wp.Friday
	default:
		return false
	}
}

// IsEmpty проверяет, что ни один день не помечен
func (wp *WeeklyPattern) IsEmpty() bool {
	return !wp.Monday && !wp.Tuesday && !wp.Wednesday && !wp.Thursday && !wp.Friday
}
