package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"office-key-tracker/internal/config"
	"office-key-tracker/internal/handler"
	"office-key-tracker/internal/notifier"
	"office-key-tracker/internal/repository"
	"office-key-tracker/internal/service"
	"office-key-tracker/pkg/clock"
	"office-key-tracker/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetTrackerConfig()
	logrus.Info("Config initialized...")

	// Инициализируем SQLite базу данных
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite ограничения
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// Включаем поддержку внешних ключей (требуется для SQLite)
	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee repository")
	}

	patternRepo, err := repository.NewGormWeeklyPatternRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create weekly pattern repository")
	}

	absenceRepo, err := repository.NewGormAbsenceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create absence repository")
	}

	alertRepo, err := repository.NewGormAlertRecordRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create alert record repository")
	}

	markerRepo, err := repository.NewGormSyncMarkerRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create sync marker repository")
	}

	systemClock := clock.NewSystemClock(cfg.Location)

	// Собираем каналы доставки: почта всегда, телеграм - если настроен
	notifiers := []notifier.Notifier{
		notifier.NewEmailNotifier(notifier.EmailConfig{
			SMTPHost:     cfg.SMTPHost,
			SMTPPort:     cfg.SMTPPort,
			SMTPUser:     cfg.SMTPUser,
			SMTPPassword: cfg.SMTPPassword,
			UseTLS:       cfg.SMTPUseTLS,
			FromEmail:    cfg.FromEmail,
			FromName:     cfg.FromName,
			Recipients:   cfg.Recipients,
		}),
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		client, err := telegram.NewClient(cfg.TelegramToken)
		if err != nil {
			logrus.Infof("Warning: Failed to create Telegram client: %v", err)
		} else {
			logrus.Infof("Telegram notifications enabled for chat %d", cfg.TelegramChatID)
			notifiers = append(notifiers, notifier.NewTelegramNotifier(client, cfg.TelegramChatID))
		}
	}

	employeeService := service.NewEmployeeService(employeeRepo, patternRepo)
	absenceService := service.NewAbsenceService(absenceRepo, employeeRepo, systemClock)
	patternService := service.NewPatternService(patternRepo, markerRepo, absenceRepo, alertRepo, employeeRepo)
	alertService := service.NewAlertService(
		employeeRepo,
		absenceRepo,
		alertRepo,
		notifier.NewMultiNotifier(notifiers...),
		systemClock,
	)

	apiHandler := handler.NewHandler(
		employeeService,
		absenceService,
		patternService,
		alertService,
		systemClock,
		cfg.Location,
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: apiHandler.Routes(),
	}

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server started on %s. Press Ctrl+C to stop.", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Server failed:", err)
		}
	}()

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}

	// Закрываем соединение с БД
	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
