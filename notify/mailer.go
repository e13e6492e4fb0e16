package notify

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// Mailer sends a plain-text mail. Implementations are best-effort; callers
// log failures but never fail a request on them.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers through the configured SMTP relay (Zoho in production).
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// NewSMTPMailerFromEnv reads SMTP_HOST / SMTP_PORT / SMTP_USER / SMTP_PASS /
// MAIL_FROM. Missing values leave the mailer unconfigured; use Configured()
// before sending.
func NewSMTPMailerFromEnv() *SMTPMailer {
	m := &SMTPMailer{
		Host: strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port: strings.TrimSpace(os.Getenv("SMTP_PORT")),
		User: strings.TrimSpace(os.Getenv("SMTP_USER")),
		Pass: os.Getenv("SMTP_PASS"),
		From: strings.TrimSpace(os.Getenv("MAIL_FROM")),
	}
	if m.Port == "" {
		m.Port = "587"
	}
	if m.From == "" {
		m.From = m.User
	}
	return m
}

// Configured reports whether the relay credentials are present.
func (m *SMTPMailer) Configured() bool {
	return m.Host != "" && m.User != "" && m.Pass != ""
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp relay not configured")
	}

	msg := strings.Builder{}
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg.String()))
}
