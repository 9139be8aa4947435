package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type smtpSender struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTPSender returns an EmailSender that delivers through plain SMTP.
func NewSMTPSender(host string, port int, username, password string) EmailSender {
	return &smtpSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

func (s *smtpSender) Send(ctx context.Context, from, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}
