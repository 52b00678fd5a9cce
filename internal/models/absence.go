package models

import "time"

// DateLayout - формат хранения дат в БД (date-only, сортируется лексикографически)
const DateLayout = "2006-01-02"

// Absence - факт отсутствия сотрудника в конкретный день.
// Уникальность по паре (employee_name, date).
type Absence struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeName string    `gorm:"not null;uniqueIndex:ux_absences_employee_date,priority:1" json:"employee_name"`
	Date         string    `gorm:"type:text;not null;uniqueIndex:ux_absences_employee_date,priority:2;index" json:"date"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Absence) TableName() string {
	return "absences"
}

// FormatDate приводит дату к формату хранения
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate разбирает дату из формата хранения
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, loc)
}
