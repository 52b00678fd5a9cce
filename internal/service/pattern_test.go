package service

import (
	"testing"
	"time"

	"office-key-tracker/internal/models"
	"office-key-tracker/internal/repository"
	"office-key-tracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type patternFixture struct {
	patterns    *PatternService
	absenceRepo repository.AbsenceRepository
	alertRepo   repository.AlertRecordRepository
	db          *gorm.DB
}

func newPatternFixture(t *testing.T) *patternFixture {
	t.Helper()
	db := testutil.OpenTestDB(t)

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	require.NoError(t, err)
	patternRepo, err := repository.NewGormWeeklyPatternRepository(db)
	require.NoError(t, err)
	absenceRepo, err := repository.NewGormAbsenceRepository(db)
	require.NoError(t, err)
	alertRepo, err := repository.NewGormAlertRecordRepository(db)
	require.NoError(t, err)
	markerRepo, err := repository.NewGormSyncMarkerRepository(db)
	require.NoError(t, err)

	require.NoError(t, employeeRepo.Create(&models.Employee{Name: "Alice", Email: "alice@example.com", HasKey: true}))
	require.NoError(t, employeeRepo.Create(&models.Employee{Name: "Bob", Email: "bob@example.com", HasKey: true}))

	return &patternFixture{
		patterns:    NewPatternService(patternRepo, markerRepo, absenceRepo, alertRepo, employeeRepo),
		absenceRepo: absenceRepo,
		alertRepo:   alertRepo,
		db:          db,
	}
}

func (f *patternFixture) absenceDates(t *testing.T, name string) []string {
	t.Helper()
	var dates []string
	require.NoError(t, f.db.Model(&models.Absence{}).
		Where("employee_name = ?", name).
		Order("date ASC").
		Pluck("date", &dates).Error)
	return dates
}

// Сценарий: шаблон Алисы "каждый понедельник" материализуется во все
// понедельники следующего месяца; повторный запуск ничего не добавляет
func TestMaterializeNextMonth(t *testing.T) {
	f := newPatternFixture(t)
	_, err := f.patterns.SetPattern("Alice", true, false, false, false, false)
	require.NoError(t, err)

	// 25 июня 2024 - триггерный день, целевой месяц июль
	trigger := time.Date(2024, time.June, 25, 0, 0, 0, 0, time.UTC)
	dates, err := f.patterns.MaterializeNextMonth(trigger)
	require.NoError(t, err)
	require.Len(t, dates, 5)

	mondays := []string{"2024-07-01", "2024-07-08", "2024-07-15", "2024-07-22", "2024-07-29"}
	assert.Equal(t, mondays, f.absenceDates(t, "Alice"))

	// Повторный запуск в тот же день - отметка уже есть
	_, err = f.patterns.MaterializeNextMonth(trigger)
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	assert.Equal(t, mondays, f.absenceDates(t, "Alice"))
}

func TestMaterializeSkipsNonTriggerDay(t *testing.T) {
	f := newPatternFixture(t)
	_, err := f.patterns.SetPattern("Alice", true, true, true, true, true)
	require.NoError(t, err)

	dates, err := f.patterns.MaterializeNextMonth(time.Date(2024, time.June, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, dates)
	assert.Empty(t, f.absenceDates(t, "Alice"))

	// День не сработал - отметка не занята, 25-е число все еще может пройти
	dates, err = f.patterns.MaterializeNextMonth(time.Date(2024, time.June, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotEmpty(t, dates)
}

// Шаблон покрывает только будни - суббота и воскресенье не материализуются
func TestMaterializeExcludesWeekends(t *testing.T) {
	f := newPatternFixture(t)
	_, err := f.patterns.SetPattern("Alice", true, true, true, true, true)
	require.NoError(t, err)

	_, err = f.patterns.MaterializeNextMonth(time.Date(2024, time.June, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	loc := time.UTC
	for _, raw := range f.absenceDates(t, "Alice") {
		date, err := models.ParseDate(raw, loc)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, date.Weekday(), raw)
		assert.NotEqual(t, time.Sunday, date.Weekday(), raw)
	}
	// В июле 2024 23 будних дня
	assert.Len(t, f.absenceDates(t, "Alice"), 23)
}

// Материализация не затирает уже существующие записи и возвращает
// только даты с новыми вставками
func TestMaterializeRespectsExistingAbsences(t *testing.T) {
	f := newPatternFixture(t)
	_, err := f.patterns.SetPattern("Alice", true, false, false, false, false)
	require.NoError(t, err)

	// Алиса уже отметилась на первый понедельник июля вручную
	_, err = f.absenceRepo.CreateIgnoreDuplicate(&models.Absence{
		EmployeeName: "Alice",
		Date:         "2024-07-01",
	})
	require.NoError(t, err)

	dates, err := f.patterns.MaterializeNextMonth(time.Date(2024, time.June, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, dates, 4)
	assert.Equal(t, "2024-07-08", models.FormatDate(dates[0]))

	var count int64
	require.NoError(t, f.db.Model(&models.Absence{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestPruneOld(t *testing.T) {
	f := newPatternFixture(t)

	seed := []string{"2024-04-30", "2024-05-01", "2024-06-03"}
	for _, date := range seed {
		_, err := f.absenceRepo.CreateIgnoreDuplicate(&models.Absence{EmployeeName: "Alice", Date: date})
		require.NoError(t, err)
	}
	_, err := f.alertRepo.TryInsert(time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC), time.Now())
	require.NoError(t, err)
	_, err = f.alertRepo.TryInsert(time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), time.Now())
	require.NoError(t, err)

	// 5 июня 2024 - триггерный день, порог - 1 мая
	trigger := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)
	deleted, err := f.patterns.PruneOld(trigger)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	assert.Equal(t, []string{"2024-05-01", "2024-06-03"}, f.absenceDates(t, "Alice"))

	record, err := f.alertRepo.GetByDate(time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotNil(t, record)

	// Повторный запуск в том же месяце - no-op
	_, err = f.patterns.PruneOld(trigger)
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestPruneSkipsNonTriggerDay(t *testing.T) {
	f := newPatternFixture(t)
	_, err := f.absenceRepo.CreateIgnoreDuplicate(&models.Absence{EmployeeName: "Alice", Date: "2024-01-15"})
	require.NoError(t, err)

	deleted, err := f.patterns.PruneOld(time.Date(2024, time.June, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.Len(t, f.absenceDates(t, "Alice"), 1)
}

func TestSetPatternReplacesEntirely(t *testing.T) {
	f := newPatternFixture(t)

	_, err := f.patterns.SetPattern("Alice", true, false, false, false, true)
	require.NoError(t, err)
	_, err = f.patterns.SetPattern("Alice", false, false, true, false, false)
	require.NoError(t, err)

	pattern, err := f.patterns.GetPattern("Alice")
	require.NoError(t, err)
	require.NotNil(t, pattern)
	assert.False(t, pattern.Monday)
	assert.True(t, pattern.Wednesday)
	assert.False(t, pattern.Friday)

	// Шаблона нет - nil без ошибки
	pattern, err = f.patterns.GetPattern("Bob")
	require.NoError(t, err)
	assert.Nil(t, pattern)

	_, err = f.patterns.GetPattern("Mallory")
	assert.ErrorIs(t, err, ErrUnknownEmployee)

	_, err = f.patterns.SetPattern("Mallory", true, false, false, false, false)
	assert.ErrorIs(t, err, ErrUnknownEmployee)
}
