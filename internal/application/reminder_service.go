package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	mailtpl "github.com/nexcruit/ats-backend/pkg/mailer/templates"
)

// maxJobsPerSweep bounds one sweep so a backlog cannot starve shutdown.
const maxJobsPerSweep = 100

// ReminderService drains due scheduled jobs. Claims are leased, so several replicas can sweep at once.
type ReminderService struct {
	Jobs       repo.JobRepository
	Interviews repo.InterviewRepository
	Notifier   Notifier
	Config     *config.Config
	Logger     logrus.FieldLogger

	now func() time.Time
}

func NewReminderService(jobs repo.JobRepository, interviews repo.InterviewRepository, notifier Notifier, cfg *config.Config, logger logrus.FieldLogger) *ReminderService {
	return &ReminderService{
		Jobs:       jobs,
		Interviews: interviews,
		Notifier:   notifier,
		Config:     cfg,
		Logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps immediately and then every REMINDER_SWEEP_INTERVAL until ctx is cancelled.
func (s *ReminderService) Run(ctx context.Context) {
	s.Logger.WithField("interval", s.Config.ReminderSweepInterval.String()).Info("reminder sweeper started")
	ticker := time.NewTicker(s.Config.ReminderSweepInterval)
	defer ticker.Stop()
	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			s.Logger.WithError(err).Error("reminder sweep failed")
		}
		select {
		case <-ctx.Done():
			s.Logger.Info("reminder sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

// Sweep processes due jobs until none is left and returns how many it handled.
func (s *ReminderService) Sweep(ctx context.Context) (int, error) {
	n := 0
	for n < maxJobsPerSweep {
		if ctx.Err() != nil {
			return n, ctx.Err()
		}
		job, err := s.Jobs.ClaimDue(ctx, s.now(), s.Config.ReminderLease)
		if err != nil {
			return n, err
		}
		if job == nil {
			return n, nil
		}
		s.process(ctx, job)
		n++
	}
	return n, nil
}

func (s *ReminderService) process(ctx context.Context, job *entity.ScheduledJob) {
	log := s.Logger.WithFields(logrus.Fields{"job_id": job.ID, "kind": job.Kind, "ref_id": job.RefID, "attempt": job.Attempts})

	if job.Kind != entity.JobInterviewReminder {
		s.complete(ctx, log, job, "unknown job kind")
		return
	}
	iv, err := s.Interviews.GetByID(ctx, job.RefID)
	if err != nil {
		s.retry(ctx, log, job, err)
		return
	}
	if iv == nil {
		s.complete(ctx, log, job, "interview no longer exists")
		return
	}
	if iv.Candidate == nil {
		s.complete(ctx, log, job, "candidate no longer exists")
		return
	}
	done := sentTo(job)
	sent, err := sendToParties(ctx, s.Notifier, s.Config, s.Logger, mailtpl.InterviewReminder, iv, done)
	if err != nil {
		remindersFailed.Add(1)
		markSent(job, done, sent)
		s.retry(ctx, log, job, err)
		return
	}
	remindersSent.Add(1)
	s.complete(ctx, log, job, "")
	log.Info("interview reminder sent")
}

func (s *ReminderService) complete(ctx context.Context, log logrus.FieldLogger, job *entity.ScheduledJob, note string) {
	if err := s.Jobs.Complete(ctx, job, note); err != nil {
		s.logFinishError(log, err, "mark job done failed")
	}
}

// retry puts the job back after REMINDER_RETRY_DELAY, or fails it once attempts are exhausted.
func (s *ReminderService) retry(ctx context.Context, log logrus.FieldLogger, job *entity.ScheduledJob, cause error) {
	var next *time.Time
	if job.Attempts < s.Config.ReminderMaxAttempts {
		at := s.now().Add(s.Config.ReminderRetryDelay)
		next = &at
		log.WithError(cause).WithField("next_run", at).Warn("reminder failed, will retry")
	} else {
		log.WithError(cause).Error("reminder failed permanently")
	}
	if err := s.Jobs.Retry(ctx, job, cause.Error(), next); err != nil {
		s.logFinishError(log, err, "reschedule job failed")
	}
}

func (s *ReminderService) logFinishError(log logrus.FieldLogger, err error, msg string) {
	if errors.Is(err, repo.ErrLeaseLost) {
		log.Warn("job lease expired before it finished; another sweeper owns it")
		return
	}
	log.WithError(err).Error(msg)
}

// payloadSent lists recipients already reminded, comma-separated, so a retry
// only sends to the ones that failed.
const payloadSent = "sent"

func sentTo(job *entity.ScheduledJob) map[string]bool {
	done := map[string]bool{}
	for _, addr := range strings.Split(job.Payload[payloadSent], ",") {
		if addr != "" {
			done[addr] = true
		}
	}
	return done
}

func markSent(job *entity.ScheduledJob, done map[string]bool, sent []string) {
	if len(sent) == 0 {
		return
	}
	all := make([]string, 0, len(done)+len(sent))
	for addr := range done {
		all = append(all, addr)
	}
	all = append(all, sent...)
	sort.Strings(all)
	if job.Payload == nil {
		job.Payload = map[string]string{}
	}
	job.Payload[payloadSent] = strings.Join(all, ",")
}
