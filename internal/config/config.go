package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type TrackerConfig struct {
	DatabaseURL string
	HTTPAddr    string
	Location    *time.Location

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool
	FromEmail    string
	FromName     string
	Recipients   []string

	TelegramToken  string
	TelegramChatID int64
}

var instance *TrackerConfig
var once sync.Once

func GetTrackerConfig() *TrackerConfig {
	once.Do(func() {
		instance = &TrackerConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Infof("No .env file loaded: %s", err.Error())
		}

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.HTTPAddr = getEnv("HTTP_ADDR", ":5000")

		// Единый часовой пояс для всех решений о границах дня
		tzName := getEnv("TIMEZONE", "UTC")
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			logrus.Fatalf("invalid TIMEZONE %q: %s", tzName, err.Error())
		}
		instance.Location = loc

		instance.SMTPHost = getEnv("SMTP_HOST", "")
		instance.SMTPPort = int(getEnvAsInt("SMTP_PORT", 587))
		instance.SMTPUser = getEnv("SMTP_USER", "")
		instance.SMTPPassword = getEnv("SMTP_PASSWORD", "")
		instance.SMTPUseTLS = getEnvAsBool("SMTP_USE_TLS", true)
		instance.FromEmail = getEnv("FROM_EMAIL", "")
		instance.FromName = getEnv("FROM_NAME", "Office Key Tracker")

		recipients := getEnv("ALERT_RECIPIENTS", "")
		for _, r := range strings.Split(recipients, ",") {
			if r = strings.TrimSpace(r); r != "" {
				instance.Recipients = append(instance.Recipients, r)
			}
		}
		if len(instance.Recipients) == 0 {
			logrus.Warn("ALERT_RECIPIENTS is empty, alert emails will be skipped")
		}

		// Телеграм-канал опционален
		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
		instance.TelegramChatID = getEnvAsInt("TELEGRAM_CHAT_ID", 0)
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
