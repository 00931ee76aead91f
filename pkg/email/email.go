package email

import (
	"fmt"
	"net/smtp"
)

// Sender sends plain text email over SMTP.
type Sender struct {
	host     string
	port     string
	from     string
	password string
}

// NewSender creates a Sender from SMTP settings.
func NewSender(host, port, from, password string) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		from:     from,
		password: password,
	}
}

// Send delivers a plain text email.
func (s *Sender) Send(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	address := s.host + ":" + s.port

	if err := smtp.SendMail(address, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
