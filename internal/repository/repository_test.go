package repository

import (
	"testing"
	"time"

	"office-key-tracker/internal/models"
	"office-key-tracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate() time.Time {
	return time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
}

func TestAbsenceUniquePerEmployeeDate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo, err := NewGormAbsenceRepository(db)
	require.NoError(t, err)

	absence := func() *models.Absence {
		return &models.Absence{EmployeeName: "Alice", Date: models.FormatDate(testDate())}
	}

	created, err := repo.CreateIgnoreDuplicate(absence())
	require.NoError(t, err)
	assert.True(t, created)

	// Повторная вставка - no-op, не ошибка
	created, err = repo.CreateIgnoreDuplicate(absence())
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Absence{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Другая дата того же сотрудника - отдельная запись
	created, err = repo.CreateIgnoreDuplicate(&models.Absence{
		EmployeeName: "Alice",
		Date:         models.FormatDate(testDate().AddDate(0, 0, 1)),
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestAbsenceQueries(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo, err := NewGormAbsenceRepository(db)
	require.NoError(t, err)

	seed := []struct {
		name string
		date time.Time
	}{
		{"Bob", testDate()},
		{"Alice", testDate()},
		{"Alice", testDate().AddDate(0, 0, 5)},
		{"Alice", testDate().AddDate(0, 0, -20)},
	}
	for _, s := range seed {
		_, err := repo.CreateIgnoreDuplicate(&models.Absence{
			EmployeeName: s.name,
			Date:         models.FormatDate(s.date),
		})
		require.NoError(t, err)
	}

	names, err := repo.GetNamesByDate(testDate())
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)

	upcoming, err := repo.GetUpcomingByEmployee("Alice", testDate())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-10", "2024-06-15"}, upcoming)

	deleted, err := repo.DeleteBefore(testDate())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	removed, err := repo.DeleteByEmployeeAndDate("Bob", testDate())
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.DeleteByEmployeeAndDate("Bob", testDate())
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAlertRecordTryInsertOnce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo, err := NewGormAlertRecordRepository(db)
	require.NoError(t, err)

	inserted, err := repo.TryInsert(testDate(), time.Now())
	require.NoError(t, err)
	assert.True(t, inserted)

	// Второй воркер проигрывает гонку и получает false
	inserted, err = repo.TryInsert(testDate(), time.Now())
	require.NoError(t, err)
	assert.False(t, inserted)

	record, err := repo.GetByDate(testDate())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.False(t, record.FollowupSent)
}

func TestSetFollowupSentCompareAndSwap(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo, err := NewGormAlertRecordRepository(db)
	require.NoError(t, err)

	_, err = repo.TryInsert(testDate(), time.Now())
	require.NoError(t, err)

	updated, err := repo.SetFollowupSent(testDate(), false, true)
	require.NoError(t, err)
	assert.True(t, updated)

	// Флаг уже true - повторный переход false->true не срабатывает
	updated, err = repo.SetFollowupSent(testDate(), false, true)
	require.NoError(t, err)
	assert.False(t, updated)

	// Обратный переход после повторной потери покрытия
	updated, err = repo.SetFollowupSent(testDate(), true, false)
	require.NoError(t, err)
	assert.True(t, updated)

	record, err := repo.GetByDate(testDate())
	require.NoError(t, err)
	assert.False(t, record.FollowupSent)
}

func TestSyncMarkerAcquireOnce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo, err := NewGormSyncMarkerRepository(db)
	require.NoError(t, err)

	key := models.SyncKeyFor(models.SyncJobMaterialize, 2024, time.July)
	assert.Equal(t, "materialize:2024-07", key)

	acquired, err := repo.TryCreate(key)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = repo.TryCreate(key)
	require.NoError(t, err)
	assert.False(t, acquired)

	// Другой период - независимая отметка
	acquired, err = repo.TryCreate(models.SyncKeyFor(models.SyncJobMaterialize, 2024, time.August))
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestWeeklyPatternUpsertReplaces(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo, err := NewGormWeeklyPatternRepository(db)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(&models.WeeklyPattern{EmployeeName: "Alice", Monday: true, Friday: true}))
	require.NoError(t, repo.Upsert(&models.WeeklyPattern{EmployeeName: "Alice", Wednesday: true}))

	pattern, err := repo.GetByEmployee("Alice")
	require.NoError(t, err)
	require.NotNil(t, pattern)
	assert.False(t, pattern.Monday)
	assert.True(t, pattern.Wednesday)
	assert.False(t, pattern.Friday)

	var count int64
	require.NoError(t, db.Model(&models.WeeklyPattern{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEmployeeRepository(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo, err := NewGormEmployeeRepository(db)
	require.NoError(t, err)

	require.NoError(t, repo.Create(&models.Employee{Name: "Alice", Email: "alice@example.com", HasKey: true}))
	require.NoError(t, repo.Create(&models.Employee{Name: "Bob", Email: "bob@example.com", HasKey: true}))
	require.NoError(t, repo.Create(&models.Employee{Name: "Carol", Email: "carol@example.com"}))

	assert.Error(t, repo.Create(&models.Employee{Name: "Alice", Email: "dup@example.com"}))

	bearers, err := repo.GetKeyBearers()
	require.NoError(t, err)
	require.Len(t, bearers, 2)
	assert.Equal(t, "Alice", bearers[0].Name)
	assert.Equal(t, "Bob", bearers[1].Name)

	missing, err := repo.GetByName("Dave")
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := repo.Exists("Carol")
	require.NoError(t, err)
	assert.True(t, exists)
}
