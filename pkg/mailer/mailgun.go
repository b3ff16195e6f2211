package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Mailgun delivers through the Mailgun HTTP API of one sending domain.
type Mailgun struct {
	client *mg.MailgunImpl
	Sender string
}

// NewMailgun builds a client for domain. Region "eu" targets the EU API host.
func NewMailgun(domain, apiKey, sender, region string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if strings.EqualFold(region, "eu") {
		client.SetAPIBase(mg.APIBaseEU)
	}
	return &Mailgun{client: client, Sender: sender}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if _, _, err := m.client.Send(c, msg); err != nil {
		return fmt.Errorf("mailgun: %w", err)
	}
	return nil
}

func (m *Mailgun) Name() string { return "mailgun" }

// APIBase reports the host messages are posted to.
func (m *Mailgun) APIBase() string { return m.client.APIBase() }
