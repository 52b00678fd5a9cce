package service

import (
	"fmt"
	"time"

	"office-key-tracker/internal/models"
	"office-key-tracker/internal/notifier"
	"office-key-tracker/internal/repository"
	"office-key-tracker/pkg/clock"

	"github.com/sirupsen/logrus"
)

// AlertService - машина состояний оповещений. Для каждой даты покрытие
// вычисляется заново из справочника и реестра отсутствий (никогда не
// кэшируется), а переходы Covered<->Uncovered фиксируются в журнале
// оповещений через уникальный индекс по дате. Кто проиграл гонку за
// вставку/обновление записи - молча выходит, письмо шлет только победитель.
type AlertService struct {
	employeeRepo repository.EmployeeRepository
	absenceRepo  repository.AbsenceRepository
	alertRepo    repository.AlertRecordRepository
	notifier     notifier.Notifier
	clock        clock.Clock
	logger       *logrus.Logger
}

func NewAlertService(
	employeeRepo repository.EmployeeRepository,
	absenceRepo repository.AbsenceRepository,
	alertRepo repository.AlertRecordRepository,
	n notifier.Notifier,
	clk clock.Clock,
) *AlertService {
	return &AlertService{
		employeeRepo: employeeRepo,
		absenceRepo:  absenceRepo,
		alertRepo:    alertRepo,
		notifier:     n,
		clock:        clk,
		logger:       logrus.New(),
	}
}

// EvaluateResult - что именно было отправлено в результате оценки даты
type EvaluateResult struct {
	InitialSent  bool
	FollowupSent bool
}

// Evaluate оценивает покрытие даты и при необходимости шлет оповещение.
// availableName - имя сотрудника, чья отмена вернула покрытие (пустая
// строка, если вызов пришел не из отмены - тогда берем первого
// доступного ключника).
func (s *AlertService) Evaluate(date time.Time, availableName string) (EvaluateResult, error) {
	date = clock.Midnight(date)
	var result EvaluateResult

	covered, bearers, absentSet, err := s.coverage(date)
	if err != nil {
		return result, err
	}

	record, err := s.alertRepo.GetByDate(date)
	if err != nil {
		return result, fmt.Errorf("failed to read alert record: %w", err)
	}

	switch {
	case record == nil && !covered:
		// Первый переход в Uncovered: вставка записи решает, кто шлет письмо
		inserted, err := s.alertRepo.TryInsert(date, s.clock.Now())
		if err != nil {
			return result, fmt.Errorf("failed to insert alert record: %w", err)
		}
		if !inserted {
			// Конкурентный воркер уже обработал переход
			return result, nil
		}
		result.InitialSent = true
		s.sendNoCoverage(date, bearers)

	case record != nil && !record.FollowupSent && covered:
		// Покрытие восстановлено после оповещения
		updated, err := s.alertRepo.SetFollowupSent(date, false, true)
		if err != nil {
			return result, fmt.Errorf("failed to update alert record: %w", err)
		}
		if !updated {
			return result, nil
		}
		result.FollowupSent = true
		s.sendChangeOfPlans(date, s.pickAvailable(availableName, bearers, absentSet))

	case record != nil && record.FollowupSent && !covered:
		// Покрытие потеряно повторно - шлем первичное оповещение заново
		updated, err := s.alertRepo.SetFollowupSent(date, true, false)
		if err != nil {
			return result, fmt.Errorf("failed to update alert record: %w", err)
		}
		if !updated {
			return result, nil
		}
		result.InitialSent = true
		s.sendNoCoverage(date, bearers)
	}

	return result, nil
}

// coverage вычисляет покрытие даты: Covered, если хотя бы один ключник
// не отмечен отсутствующим. Без единого ключника в справочнике дата
// считается покрытой - оповещать некого и не о ком.
func (s *AlertService) coverage(date time.Time) (bool, []models.Employee, map[string]bool, error) {
	bearers, err := s.employeeRepo.GetKeyBearers()
	if err != nil {
		return false, nil, nil, fmt.Errorf("failed to load key bearers: %w", err)
	}

	absentNames, err := s.absenceRepo.GetNamesByDate(date)
	if err != nil {
		return false, nil, nil, fmt.Errorf("failed to load absences: %w", err)
	}

	absentSet := make(map[string]bool, len(absentNames))
	for _, name := range absentNames {
		absentSet[name] = true
	}

	if len(bearers) == 0 {
		s.logger.Warnf("No key bearers in directory, treating %s as covered", models.FormatDate(date))
		return true, bearers, absentSet, nil
	}

	for _, bearer := range bearers {
		if !absentSet[bearer.Name] {
			return true, bearers, absentSet, nil
		}
	}
	return false, bearers, absentSet, nil
}

// pickAvailable выбирает, кого назвать в письме "change of plans"
func (s *AlertService) pickAvailable(availableName string, bearers []models.Employee, absentSet map[string]bool) string {
	if availableName != "" {
		return availableName
	}
	for _, bearer := range bearers {
		if !absentSet[bearer.Name] {
			return bearer.Name
		}
	}
	return "A key bearer"
}

// Ошибка доставки не откатывает запись в журнале: повторная оценка
// не должна заспамить получателей дублями. Запись уже помечена как
// отправленная, сбой только логируется.
func (s *AlertService) sendNoCoverage(date time.Time, bearers []models.Employee) {
	names := make([]string, 0, len(bearers))
	for _, bearer := range bearers {
		names = append(names, bearer.Name)
	}
	if err := s.notifier.SendNoCoverage(date, names); err != nil {
		s.logger.Errorf("Failed to send no-coverage alert for %s: %v", models.FormatDate(date), err)
		return
	}
	s.logger.Infof("No-coverage alert sent for %s", models.FormatDate(date))
}

func (s *AlertService) sendChangeOfPlans(date time.Time, availableName string) {
	if err := s.notifier.SendChangeOfPlans(date, availableName); err != nil {
		s.logger.Errorf("Failed to send change-of-plans alert for %s: %v", models.FormatDate(date), err)
		return
	}
	s.logger.Infof("Change-of-plans alert sent for %s (%s is available)", models.FormatDate(date), availableName)
}
