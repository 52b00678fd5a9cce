package repository

import (
	"errors"
	"office-key-tracker/internal/models"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByName(name string) (*models.Employee, error)
	GetAll() ([]models.Employee, error)
	GetKeyBearers() ([]models.Employee, error)
	Update(employee *models.Employee) error
	Delete(name string) error
	Exists(name string) (bool, error)
}

type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) (EmployeeRepository, error) {
	// Автомиграция - создает таблицу если ее нет
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		return nil, err
	}
	return &GormEmployeeRepository{db: db}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	err := r.db.Create(employee).Error
	if isUniqueConstraintError(err) {
		return errors.New("employee already exists")
	}
	return err
}

func (r *GormEmployeeRepository) GetByName(name string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("name = ?", name).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) GetAll() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Order("name ASC").Find(&employees).Error
	return employees, err
}

// GetKeyBearers возвращает всех сотрудников с ключом
func (r *GormEmployeeRepository) GetKeyBearers() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Where("has_key = ?", true).Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

func (r *GormEmployeeRepository) Delete(name string) error {
	result := r.db.Where("name = ?", name).Delete(&models.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("employee not found")
	}
	return nil
}

func (r *GormEmployeeRepository) Exists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Employee{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
