package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridSender struct {
	apiKey string
}

// NewSendGridSender returns an EmailSender backed by the SendGrid API.
func NewSendGridSender(apiKey string) EmailSender {
	return &sendgridSender{apiKey: apiKey}
}

func (s *sendgridSender) Send(ctx context.Context, from, to, subject, body string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("", from),
		subject,
		mail.NewEmail("", to),
		body,
		"",
	)
	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}
