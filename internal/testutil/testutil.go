package testutil

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB открывает чистую in-memory базу на время теста.
// Имя базы уникально на тест, пул ограничен одним соединением, чтобы
// все горутины теста видели одну и ту же базу.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// FakeNotifier считает отправки вместо реальной доставки
type FakeNotifier struct {
	mu sync.Mutex

	NoCoverageSent    int
	ChangeOfPlansSent int
	LastAbsent        []string
	LastAvailable     string

	// FailSends имитирует отказ транспорта
	FailSends bool
	SendErr   error
}

func (f *FakeNotifier) SendNoCoverage(date time.Time, absentBearers []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.NoCoverageSent++
	f.LastAbsent = absentBearers
	return f.sendResult()
}

func (f *FakeNotifier) SendChangeOfPlans(date time.Time, availableName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ChangeOfPlansSent++
	f.LastAvailable = availableName
	return f.sendResult()
}

func (f *FakeNotifier) sendResult() error {
	if !f.FailSends {
		return nil
	}
	if f.SendErr != nil {
		return f.SendErr
	}
	return errors.New("smtp unavailable")
}

// Counts возвращает счетчики отправок под блокировкой
func (f *FakeNotifier) Counts() (noCoverage, changeOfPlans int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.NoCoverageSent, f.ChangeOfPlansSent
}
