package notifier

import "time"

// Notifier - канал доставки оповещений. Ошибка отправки не откатывает
// запись в журнале оповещений: лучше потерять письмо, чем заспамить
// получателей дублями при повторных вызовах.
type Notifier interface {
	// SendNoCoverage - первичное оповещение "ни одного ключника не будет"
	SendNoCoverage(date time.Time, absentBearers []string) error
	// SendChangeOfPlans - оповещение о том, что кто-то снова доступен
	SendChangeOfPlans(date time.Time, availableName string) error
}

// MultiNotifier рассылает через все каналы, возвращая первую ошибку.
// Остальные каналы при этом все равно отрабатывают.
type MultiNotifier struct {
	notifiers []Notifier
}

func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (m *MultiNotifier) SendNoCoverage(date time.Time, absentBearers []string) error {
	var firstErr error
	for _, n := range m.notifiers {
		if err := n.SendNoCoverage(date, absentBearers); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *MultiNotifier) SendChangeOfPlans(date time.Time, availableName string) error {
	var firstErr error
	for _, n := range m.notifiers {
		if err := n.SendChangeOfPlans(date, availableName); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// longDate - формат даты в письмах, например "Monday, June 10, 2024"
func longDate(date time.Time) string {
	return date.Format("Monday, January 2, 2006")
}
