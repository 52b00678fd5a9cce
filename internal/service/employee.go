package service

import (
	"fmt"

	"office-key-tracker/internal/models"
	"office-key-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	patternRepo  repository.WeeklyPatternRepository
	logger       *logrus.Logger
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	patternRepo repository.WeeklyPatternRepository,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		patternRepo:  patternRepo,
		logger:       logrus.New(),
	}
}

// CreateEmployee регистрирует сотрудника в справочнике
func (s *EmployeeService) CreateEmployee(name, email string, hasKey bool) (*models.Employee, error) {
	employee := &models.Employee{
		Name:   name,
		Email:  email,
		HasKey: hasKey,
	}
	if !employee.IsValid() {
		return nil, ErrInvalidEmployee
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Infof("Employee %s registered (has_key=%v)", name, hasKey)
	return employee, nil
}

func (s *EmployeeService) GetEmployee(name string) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrUnknownEmployee
	}
	return employee, nil
}

func (s *EmployeeService) GetAllEmployees() ([]models.Employee, error) {
	return s.employeeRepo.GetAll()
}

func (s *EmployeeService) GetKeyBearers() ([]models.Employee, error) {
	return s.employeeRepo.GetKeyBearers()
}

// UpdateEmployee обновляет почту и признак ключника
func (s *EmployeeService) UpdateEmployee(name, email string, hasKey bool) (*models.Employee, error) {
	employee, err := s.GetEmployee(name)
	if err != nil {
		return nil, err
	}

	employee.Email = email
	employee.HasKey = hasKey
	if !employee.IsValid() {
		return nil, ErrInvalidEmployee
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// DeleteEmployee удаляет сотрудника вместе с его недельным шаблоном
func (s *EmployeeService) DeleteEmployee(name string) error {
	if err := s.patternRepo.DeleteByEmployee(name); err != nil {
		s.logger.Warnf("Failed to delete pattern for %s: %v", name, err)
	}
	if err := s.employeeRepo.Delete(name); err != nil {
		return ErrUnknownEmployee
	}
	s.logger.Infof("Employee %s deleted", name)
	return nil
}
