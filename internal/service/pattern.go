package service

import (
	"fmt"
	"sort"
	"time"

	"office-key-tracker/internal/models"
	"office-key-tracker/internal/repository"
	"office-key-tracker/pkg/clock"

	"github.com/sirupsen/logrus"
)

// Триггерные дни периодических задач (внешний cron дергает их ежедневно,
// сама задача срабатывает только в свой день месяца)
const (
	MaterializeTriggerDay = 25
	PruneTriggerDay       = 5
)

// PatternService - недельные шаблоны отсутствий и их периодическая
// материализация в конкретные записи реестра. Идемпотентность задач
// обеспечивает уникальный SyncMarker, а не взаимное исключение.
type PatternService struct {
	patternRepo  repository.WeeklyPatternRepository
	markerRepo   repository.SyncMarkerRepository
	absenceRepo  repository.AbsenceRepository
	alertRepo    repository.AlertRecordRepository
	employeeRepo repository.EmployeeRepository
	logger       *logrus.Logger
}

func NewPatternService(
	patternRepo repository.WeeklyPatternRepository,
	markerRepo repository.SyncMarkerRepository,
	absenceRepo repository.AbsenceRepository,
	alertRepo repository.AlertRecordRepository,
	employeeRepo repository.EmployeeRepository,
) *PatternService {
	return &PatternService{
		patternRepo:  patternRepo,
		markerRepo:   markerRepo,
		absenceRepo:  absenceRepo,
		alertRepo:    alertRepo,
		employeeRepo: employeeRepo,
		logger:       logrus.New(),
	}
}

// GetPattern возвращает шаблон сотрудника. nil без ошибки = шаблона нет.
func (s *PatternService) GetPattern(name string) (*models.WeeklyPattern, error) {
	exists, err := s.employeeRepo.Exists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownEmployee
	}
	return s.patternRepo.GetByEmployee(name)
}

// SetPattern полностью замещает шаблон сотрудника (не сливает с прежним)
func (s *PatternService) SetPattern(name string, monday, tuesday, wednesday, thursday, friday bool) (*models.WeeklyPattern, error) {
	exists, err := s.employeeRepo.Exists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownEmployee
	}

	pattern := &models.WeeklyPattern{
		EmployeeName: name,
		Monday:       monday,
		Tuesday:      tuesday,
		Wednesday:    wednesday,
		Thursday:     thursday,
		Friday:       friday,
	}
	if err := s.patternRepo.Upsert(pattern); err != nil {
		return nil, fmt.Errorf("failed to save pattern: %w", err)
	}

	s.logger.Infof("Weekly pattern saved for %s", name)
	return pattern, nil
}

// MaterializeNextMonth в триггерный день превращает недельные шаблоны в
// записи реестра на весь следующий месяц. Возвращает даты, по которым
// появились новые записи, - их оценку выполняет вызывающий, сама
// материализация машину оповещений не трогает.
func (s *PatternService) MaterializeNextMonth(today time.Time) ([]time.Time, error) {
	today = clock.Midnight(today)
	if today.Day() != MaterializeTriggerDay {
		return nil, nil
	}

	// Первый день следующего месяца в том же часовом поясе
	monthStart := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	syncKey := models.SyncKeyFor(models.SyncJobMaterialize, monthStart.Year(), monthStart.Month())
	acquired, err := s.markerRepo.TryCreate(syncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire sync marker: %w", err)
	}
	if !acquired {
		return nil, ErrAlreadyApplied
	}

	patterns, err := s.patternRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}

	touched := make(map[string]time.Time)
	inserted := 0
	for date := monthStart; date.Before(monthEnd); date = date.AddDate(0, 0, 1) {
		for _, pattern := range patterns {
			if !pattern.AbsentOn(date.Weekday()) {
				continue
			}
			created, err := s.absenceRepo.CreateIgnoreDuplicate(&models.Absence{
				EmployeeName: pattern.EmployeeName,
				Date:         models.FormatDate(date),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to materialize absence for %s: %w", models.FormatDate(date), err)
			}
			if created {
				inserted++
				touched[models.FormatDate(date)] = date
			}
		}
	}

	dates := make([]time.Time, 0, len(touched))
	for _, date := range touched {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	s.logger.Infof("Materialized %d absences for %04d-%02d across %d dates",
		inserted, monthStart.Year(), int(monthStart.Month()), len(dates))
	return dates, nil
}

// PruneOld в триггерный день удаляет записи старше начала прошлого месяца
func (s *PatternService) PruneOld(today time.Time) (int64, error) {
	today = clock.Midnight(today)
	if today.Day() != PruneTriggerDay {
		return 0, nil
	}

	syncKey := models.SyncKeyFor(models.SyncJobPrune, today.Year(), today.Month())
	acquired, err := s.markerRepo.TryCreate(syncKey)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire sync marker: %w", err)
	}
	if !acquired {
		return 0, ErrAlreadyApplied
	}

	// Строго раньше первого дня прошлого месяца
	cutoff := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, today.Location())

	absences, err := s.absenceRepo.DeleteBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune absences: %w", err)
	}

	alerts, err := s.alertRepo.DeleteBefore(cutoff)
	if err != nil {
		return absences, fmt.Errorf("failed to prune alert records: %w", err)
	}

	if _, err := s.markerRepo.DeleteBefore(cutoff); err != nil {
		s.logger.Warnf("Failed to prune old sync markers: %v", err)
	}

	s.logger.Infof("Pruned %d absences and %d alert records before %s",
		absences, alerts, models.FormatDate(cutoff))
	return absences + alerts, nil
}
