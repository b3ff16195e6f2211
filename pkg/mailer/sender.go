package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nexcruit/ats-backend/config"
	mailtpl "github.com/nexcruit/ats-backend/pkg/mailer/templates"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
	Name() string
}

// NewSender picks the transport named by MAIL_PROVIDER.
func NewSender(cfg *config.Config) (Sender, error) {
	switch strings.ToLower(cfg.MailProvider) {
	case "smtp", "":
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFromName, cfg.MailFromAddress), nil
	case "mailgun":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
			return nil, fmt.Errorf("mailgun not configured")
		}
		sender := cfg.MailgunSender
		if sender == "" {
			sender = cfg.MailFrom()
		}
		return NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, sender, cfg.MailgunRegion), nil
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend not configured")
		}
		return NewResend(cfg.ResendAPIKey, cfg.MailFrom()), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}

// Prepare resolves the subject and bodies of a job, rendering its template when one is named.
func Prepare(job EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", fmt.Errorf("email job has no recipient")
	}
	if job.Template == "" {
		if job.Subject == "" {
			return "", "", "", fmt.Errorf("email job to %s has neither template nor subject", job.To)
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return strings.TrimSpace(subject), text, html, nil
}
