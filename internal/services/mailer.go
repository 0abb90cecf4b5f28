package services

import (
	"net"
	"net/smtp"
	"strings"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/pkg/logger"
)

// Mailer delivers one-time login codes.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func (m SMTPMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	return smtp.SendMail(net.JoinHostPort(m.Host, m.Port), auth, m.From, []string{to}, []byte(msg))
}

// LogMailer logs instead of sending. Used when SMTP is not configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	logger.Info().Str("to", to).Str("subject", subject).Msg(body)
	return nil
}
