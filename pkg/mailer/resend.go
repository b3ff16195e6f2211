package mailer

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// Resend delivers through the Resend HTTP API.
type Resend struct {
	client *resend.Client
	From   string
}

func NewResend(apiKey, from string) *Resend {
	return &Resend{client: resend.NewClient(apiKey), From: from}
}

func (r *Resend) Send(ctx context.Context, to, subject, text, html string) error {
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, err := r.client.Emails.SendWithContext(c, &resend.SendEmailRequest{
		From:    r.From,
		To:      []string{to},
		Subject: subject,
		Text:    text,
		Html:    html,
	})
	return err
}

func (r *Resend) Name() string { return "resend" }
