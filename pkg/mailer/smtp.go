package mailer

import (
	"context"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTP sends through a plain SMTP relay. Auth is skipped when User is empty.
type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	FromName string
	FromAddr string
}

func NewSMTP(host string, port int, user, password, fromName, fromAddr string) *SMTP {
	return &SMTP{Host: host, Port: port, User: user, Password: password, FromName: fromName, FromAddr: fromAddr}
}

func (s *SMTP) Send(ctx context.Context, to, subject, text, html string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.FromName, s.FromAddr); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	if html != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, html)
	}

	opts := []mail.Option{
		mail.WithPort(s.Port),
		mail.WithTimeout(10 * time.Second),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if s.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.User),
			mail.WithPassword(s.Password),
		)
	}
	client, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return client.DialAndSendWithContext(c, msg)
}

func (s *SMTP) Name() string { return "smtp" }
