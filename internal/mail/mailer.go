package mail

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
)

// Mailer sends notification emails. Implemented over plain SMTP; services
// depend on the interface so tests can swap it out.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a single SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	log      *logrus.Logger
}

// NewSMTPMailer creates a mailer for the given relay. Auth is skipped when
// no username is configured, which is the local-development case.
func NewSMTPMailer(host, port, username, password, from string, log *logrus.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		log:      log,
	}
}

// Send delivers a plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("empty recipient address")
	}

	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	m.log.WithField("to", to).Info("email sent")
	return nil
}
