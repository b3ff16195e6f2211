package notify

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/pkg/helpers"
	"github.com/nexcruit/ats-backend/pkg/mailer"
)

// Publisher is the subset of helpers.RabbitPublisher the queue notifier needs.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Queue publishes email jobs for cmd/email_worker to render and send.
type Queue struct {
	pub     Publisher
	timeout time.Duration
}

func NewQueue(pub Publisher) *Queue {
	return &Queue{pub: pub, timeout: 5 * time.Second}
}

func (q *Queue) Notify(ctx context.Context, job mailer.EmailJob) error {
	helpers.EnsureRecipientAndEmail(&job)
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()
	return q.pub.PublishJSON(ctx, job)
}

// Direct renders and sends inside the calling request.
type Direct struct {
	sender  mailer.Sender
	timeout time.Duration
}

func NewDirect(sender mailer.Sender) *Direct {
	return &Direct{sender: sender, timeout: 20 * time.Second}
}

func (d *Direct) Notify(ctx context.Context, job mailer.EmailJob) error {
	helpers.EnsureRecipientAndEmail(&job)
	subject, text, html, err := mailer.Prepare(job)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.sender.Send(ctx, job.To, subject, text, html)
}

// Discard logs and drops every email; used when MAIL_SEND_ENABLED=false.
type Discard struct {
	logger logrus.FieldLogger
}

func NewDiscard(logger logrus.FieldLogger) *Discard {
	return &Discard{logger: logger}
}

func (d *Discard) Notify(_ context.Context, job mailer.EmailJob) error {
	d.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("mail sending disabled, dropping email")
	return nil
}
