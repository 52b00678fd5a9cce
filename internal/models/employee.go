package models

import "time"

type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	HasKey    bool      `gorm:"not null;default:false;index" json:"has_key"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName задает имя таблицы в БД
func (Employee) TableName() string {
	return "employees"
}

// IsKeyBearer проверяет, является ли сотрудник ключником
func (e *Employee) IsKeyBearer() bool {
	return e.HasKey
}

// IsValid проверяет валидность данных
func (e *Employee) IsValid() bool {
	if e.Name == "" {
		return false
	}
	if e.Email == "" {
		return false
	}
	return true
}
