package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer sends already-rendered notification mail. The core only ever hands
// it a recipient, a subject and a body.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer is a thin SMTP implementation of Mailer.
type SMTPMailer struct {
	host string
	port string
	from string
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(host, port, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from}
}

// Send delivers a single plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
