package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/pkg/mailer"
)

// dispatch hands job to the notifier and records the outcome.
// Callers decide whether a failure matters; most treat it as best-effort.
func dispatch(ctx context.Context, n Notifier, logger logrus.FieldLogger, job mailer.EmailJob) error {
	if err := n.Notify(ctx, job); err != nil {
		emailsFailed.Add(1)
		logger.WithError(err).WithFields(logrus.Fields{
			"to":       job.To,
			"template": job.Template,
		}).Warn("email dispatch failed")
		return err
	}
	emailsDispatched.Add(1)
	return nil
}
