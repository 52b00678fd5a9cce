package notifier

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	UseTLS       bool
	FromEmail    string
	FromName     string
	Recipients   []string
}

// EmailNotifier шлет оповещения по SMTP (text + HTML, multipart/alternative)
type EmailNotifier struct {
	cfg    EmailConfig
	logger *logrus.Logger
}

func NewEmailNotifier(cfg EmailConfig) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		logger: logrus.New(),
	}
}

func (n *EmailNotifier) SendNoCoverage(date time.Time, absentBearers []string) error {
	formatted := longDate(date)
	subject := fmt.Sprintf("🔑 Park Agility Office Alert - No Key Bearers Available - %s", formatted)

	var statusLines []string
	var statusItems []string
	for _, name := range absentBearers {
		statusLines = append(statusLines, fmt.Sprintf("  - %s: Not Available", name))
		statusItems = append(statusItems,
			fmt.Sprintf(`<div class="status-item"><span class="status-icon">✕</span><span>%s - Not Available</span></div>`, name))
	}

	text := fmt.Sprintf(`PARK AGILITY - OFFICE ACCESS ALERT

Date: %s

All key bearers have indicated they will NOT be in the office on this date.

Key Bearers Status:
%s

Please make alternative arrangements if you need office access on this day.

---
This is an automated message from the Park Agility Office Key Tracker.
`, formatted, strings.Join(statusLines, "\n"))

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #1e2a5e; color: white; padding: 30px; border-radius: 12px 12px 0 0; text-align: center;">
      <h1 style="margin: 0; font-size: 24px;">Park Agility Office Key Tracker</h1>
      <div style="color: #3dbb91; font-size: 12px; letter-spacing: 1px; margin-top: 8px;">FASTER.SMARTER.GREENER.</div>
    </div>
    <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 12px 12px;">
      <div style="background: white; padding: 20px; border-radius: 8px; text-align: center; margin-bottom: 20px; border-left: 4px solid #dc2626;">
        <h2 style="margin: 0; color: #dc2626; font-size: 20px;">⚠️ %s</h2>
        <p style="margin: 10px 0 0 0; color: #666;">No key bearers available</p>
      </div>
      <p><strong>All key bearers</strong> have indicated they will NOT be in the office on this date.</p>
      <div style="background: white; padding: 20px; border-radius: 8px;">
        <h3 style="margin-top: 0; color: #1e2a5e;">Key Bearers Status:</h3>
        %s
      </div>
      <div style="margin-top: 20px; padding: 15px; background: #fef3e6; border-radius: 8px; color: #b45309; border: 1px solid #fcd9b6;">
        ⚠️ Please make alternative arrangements if you need office access on this day.
      </div>
    </div>
    <div style="text-align: center; margin-top: 20px; color: #888; font-size: 12px;">
      This is an automated message from the Park Agility Office Key Tracker.
    </div>
  </div>
</body>
</html>
`, formatted, strings.Join(statusItems, "\n        "))

	return n.send(subject, text, html)
}

func (n *EmailNotifier) SendChangeOfPlans(date time.Time, availableName string) error {
	formatted := longDate(date)
	subject := fmt.Sprintf("🔑 Park Agility Office Update - Change of Plans - %s", formatted)

	text := fmt.Sprintf(`PARK AGILITY - CHANGE OF PLANS

Date: %s

Good news! %s is now going to be in the office on this date.

The office will be accessible.

---
This is an automated message from the Park Agility Office Key Tracker.
`, formatted, availableName)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #1e2a5e; color: white; padding: 30px; border-radius: 12px 12px 0 0; text-align: center;">
      <h1 style="margin: 0; font-size: 24px;">Park Agility Office Key Tracker</h1>
      <div style="color: #3dbb91; font-size: 12px; letter-spacing: 1px; margin-top: 8px;">FASTER.SMARTER.GREENER.</div>
    </div>
    <div style="background: #f8f9fa; padding: 30px; border-radius: 0 0 12px 12px;">
      <div style="background: white; padding: 20px; border-radius: 8px; text-align: center; margin-bottom: 20px; border-left: 4px solid #3dbb91;">
        <h2 style="margin: 0; color: #3dbb91; font-size: 20px;">✓ %s</h2>
        <p style="margin: 10px 0 0 0; color: #666;">Change of Plans</p>
      </div>
      <div style="background: #d4f5e9; padding: 20px; border-radius: 8px; text-align: center; margin: 20px 0;">
        <h3 style="margin: 0 0 10px 0; color: #1a7a5a;">Good News!</h3>
        <p style="margin: 0; color: #166534; font-size: 16px;"><strong>%s</strong> is now going to be in the office on this date.</p>
      </div>
      <p style="text-align: center; color: #666;">The office will be accessible. 🎉</p>
    </div>
    <div style="text-align: center; margin-top: 20px; color: #888; font-size: 12px;">
      This is an automated message from the Park Agility Office Key Tracker.
    </div>
  </div>
</body>
</html>
`, formatted, availableName)

	return n.send(subject, text, html)
}

// send собирает multipart/alternative письмо и отправляет его по SMTP.
// Пустой список получателей - не ошибка, просто ничего не шлем.
func (n *EmailNotifier) send(subject, text, html string) error {
	if len(n.cfg.Recipients) == 0 {
		n.logger.Warn("No alert recipients configured, skipping email")
		return nil
	}

	boundary := "=_office-key-tracker_boundary"
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", n.cfg.FromName, n.cfg.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(n.cfg.Recipients, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary)
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(text)
	fmt.Fprintf(&msg, "\r\n--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(html)
	fmt.Fprintf(&msg, "\r\n--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPassword, n.cfg.SMTPHost)

	var err error
	if n.cfg.UseTLS {
		// STARTTLS делает сам smtp.SendMail, если сервер его объявляет
		err = smtp.SendMail(addr, auth, n.cfg.FromEmail, n.cfg.Recipients, []byte(msg.String()))
	} else {
		err = n.sendImplicitTLS(addr, auth, []byte(msg.String()))
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Infof("Alert email sent to %d recipients", len(n.cfg.Recipients))
	return nil
}

// sendImplicitTLS - отправка через SMTPS (TLS с самого начала соединения)
func (n *EmailNotifier) sendImplicitTLS(addr string, auth smtp.Auth, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: n.cfg.SMTPHost})
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, n.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(n.cfg.FromEmail); err != nil {
		return err
	}
	for _, rcpt := range n.cfg.Recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
