package notifier

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubNotifier struct {
	noCoverage    int
	changeOfPlans int
	err           error
}

func (s *stubNotifier) SendNoCoverage(date time.Time, absentBearers []string) error {
	s.noCoverage++
	return s.err
}

func (s *stubNotifier) SendChangeOfPlans(date time.Time, availableName string) error {
	s.changeOfPlans++
	return s.err
}

func TestMultiNotifierFansOut(t *testing.T) {
	first := &stubNotifier{}
	second := &stubNotifier{}
	multi := NewMultiNotifier(first, second)

	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, multi.SendNoCoverage(date, []string{"Alice"}))
	assert.NoError(t, multi.SendChangeOfPlans(date, "Bob"))

	assert.Equal(t, 1, first.noCoverage)
	assert.Equal(t, 1, second.noCoverage)
	assert.Equal(t, 1, first.changeOfPlans)
	assert.Equal(t, 1, second.changeOfPlans)
}

// Отказ одного канала не мешает остальным, но наружу уходит первая ошибка
func TestMultiNotifierContinuesAfterFailure(t *testing.T) {
	failing := &stubNotifier{err: errors.New("smtp down")}
	working := &stubNotifier{}
	multi := NewMultiNotifier(failing, working)

	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	err := multi.SendNoCoverage(date, []string{"Alice"})
	assert.EqualError(t, err, "smtp down")
	assert.Equal(t, 1, working.noCoverage)
}

func TestLongDateFormat(t *testing.T) {
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Monday, June 10, 2024", longDate(date))
}

func TestEmailNotifierSkipsWithoutRecipients(t *testing.T) {
	n := NewEmailNotifier(EmailConfig{})
	date := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	// Пустой список получателей - no-op, а не ошибка
	assert.NoError(t, n.SendNoCoverage(date, []string{"Alice"}))
	assert.NoError(t, n.SendChangeOfPlans(date, "Alice"))
}
