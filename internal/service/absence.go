package service

import (
	"fmt"
	"time"

	"office-key-tracker/internal/models"
	"office-key-tracker/internal/repository"
	"office-key-tracker/pkg/clock"

	"github.com/sirupsen/logrus"
)

// AbsenceService - реестр отсутствий: по одной записи на пару
// (сотрудник, дата), повторная пометка идемпотентна.
type AbsenceService struct {
	absenceRepo  repository.AbsenceRepository
	employeeRepo repository.EmployeeRepository
	clock        clock.Clock
	logger       *logrus.Logger
}

func NewAbsenceService(
	absenceRepo repository.AbsenceRepository,
	employeeRepo repository.EmployeeRepository,
	clk clock.Clock,
) *AbsenceService {
	return &AbsenceService{
		absenceRepo:  absenceRepo,
		employeeRepo: employeeRepo,
		clock:        clk,
		logger:       logrus.New(),
	}
}

// MarkAbsent помечает сотрудника отсутствующим в указанный день.
// Прошедшие даты отклоняются, повторная пометка - no-op.
// Возвращает true, если запись действительно создана.
func (s *AbsenceService) MarkAbsent(name string, date time.Time) (bool, error) {
	date = clock.Midnight(date)

	if date.Before(s.clock.Today()) {
		return false, ErrPastDate
	}

	exists, err := s.employeeRepo.Exists(name)
	if err != nil {
		return false, fmt.Errorf("failed to check employee: %w", err)
	}
	if !exists {
		return false, ErrUnknownEmployee
	}

	created, err := s.absenceRepo.CreateIgnoreDuplicate(&models.Absence{
		EmployeeName: name,
		Date:         models.FormatDate(date),
	})
	if err != nil {
		return false, fmt.Errorf("failed to mark absence: %w", err)
	}

	if created {
		s.logger.Infof("Marked %s absent on %s", name, models.FormatDate(date))
	}
	return created, nil
}

// CancelAbsence снимает пометку об отсутствии, если она есть
func (s *AbsenceService) CancelAbsence(name string, date time.Time) (bool, error) {
	date = clock.Midnight(date)

	deleted, err := s.absenceRepo.DeleteByEmployeeAndDate(name, date)
	if err != nil {
		return false, fmt.Errorf("failed to cancel absence: %w", err)
	}

	if deleted {
		s.logger.Infof("Cancelled absence of %s on %s", name, models.FormatDate(date))
	}
	return deleted, nil
}

// ListAbsencesFor возвращает имена всех отсутствующих в указанный день
func (s *AbsenceService) ListAbsencesFor(date time.Time) ([]string, error) {
	return s.absenceRepo.GetNamesByDate(clock.Midnight(date))
}

// ListUpcomingFor возвращает будущие даты отсутствий сотрудника по возрастанию
func (s *AbsenceService) ListUpcomingFor(name string) ([]string, error) {
	exists, err := s.employeeRepo.Exists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownEmployee
	}
	return s.absenceRepo.GetUpcomingByEmployee(name, s.clock.Today())
}

// Calendar возвращает все будущие отсутствия, сгруппированные по датам
func (s *AbsenceService) Calendar() (map[string][]string, error) {
	absences, err := s.absenceRepo.GetAllFrom(s.clock.Today())
	if err != nil {
		return nil, err
	}

	calendar := make(map[string][]string)
	for _, a := range absences {
		calendar[a.Date] = append(calendar[a.Date], a.EmployeeName)
	}
	return calendar, nil
}
