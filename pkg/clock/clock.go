package clock

import "time"

// Clock - источник текущей даты. Все решения о границах дня
// (проверка "дата в прошлом", триггерные дни синхронизации) идут
// через него, чтобы тесты были детерминированными, а система
// жила в одном настроенном часовом поясе.
type Clock interface {
	Now() time.Time
	// Today возвращает сегодняшнюю дату (полночь в часовом поясе системы)
	Today() time.Time
}

type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *SystemClock) Today() time.Time {
	return Midnight(c.Now())
}

// FixedClock - фиксированное "сегодня" для тестов
type FixedClock struct {
	Time time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.Time
}

func (c *FixedClock) Today() time.Time {
	return Midnight(c.Time)
}

// Midnight отбрасывает время, оставляя только дату
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
