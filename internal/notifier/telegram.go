package notifier

import (
	"fmt"
	"strings"
	"time"

	"office-key-tracker/pkg/telegram"
)

// TelegramNotifier дублирует оповещения в офисный чат.
// Включается только если в конфиге задан токен бота.
type TelegramNotifier struct {
	client *telegram.Client
	chatID int64
}

func NewTelegramNotifier(client *telegram.Client, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{client: client, chatID: chatID}
}

func (n *TelegramNotifier) SendNoCoverage(date time.Time, absentBearers []string) error {
	var lines []string
	for _, name := range absentBearers {
		lines = append(lines, fmt.Sprintf("  ✕ %s", name))
	}
	text := fmt.Sprintf(
		"🔑 Office Alert - %s\n\nNo key bearers will be in the office:\n%s\n\nPlease make alternative arrangements if you need office access.",
		longDate(date), strings.Join(lines, "\n"))
	return n.client.SendMessage(n.chatID, text)
}

func (n *TelegramNotifier) SendChangeOfPlans(date time.Time, availableName string) error {
	text := fmt.Sprintf(
		"🔑 Office Update - %s\n\nGood news! %s is now going to be in the office. The office will be accessible.",
		longDate(date), availableName)
	return n.client.SendMessage(n.chatID, text)
}
