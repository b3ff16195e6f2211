package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/pkg/mailer"
	mailtpl "github.com/nexcruit/ats-backend/pkg/mailer/templates"
)

type InterviewInput struct {
	CandidateID   string
	PipelineStage string
	Date          time.Time
}

type InterviewService struct {
	Interviews repo.InterviewRepository
	Candidates repo.CandidateRepository
	Jobs       repo.JobRepository
	Meetings   MeetingScheduler
	Notifier   Notifier
	Config     *config.Config
	Logger     logrus.FieldLogger

	now func() time.Time
}

func NewInterviewService(interviews repo.InterviewRepository, candidates repo.CandidateRepository, jobs repo.JobRepository, meetings MeetingScheduler, notifier Notifier, cfg *config.Config, logger logrus.FieldLogger) *InterviewService {
	return &InterviewService{
		Interviews: interviews,
		Candidates: candidates,
		Jobs:       jobs,
		Meetings:   meetings,
		Notifier:   notifier,
		Config:     cfg,
		Logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func invalidStage() *ValidationError {
	names := make([]string, 0, len(entity.InterviewStages))
	for _, st := range entity.InterviewStages {
		names = append(names, string(st))
	}
	msg := "Invalid pipelineStage. Must be one of: " + strings.Join(names, ", ")
	return &ValidationError{Message: msg, Fields: map[string]string{"pipelineStage": msg}}
}

func parseStage(v string) (entity.InterviewStage, error) {
	st := entity.InterviewStage(strings.TrimSpace(v))
	if !st.Valid() {
		return "", invalidStage()
	}
	return st, nil
}

// reminderAt is when the reminder for an interview at date should fire.
// A reminder whose lead time already passed fires immediately; past interviews get none.
func reminderAt(date, now time.Time, lead time.Duration) (time.Time, bool) {
	if !date.After(now) {
		return time.Time{}, false
	}
	at := date.Add(-lead)
	if at.Before(now) {
		at = now
	}
	return at, true
}

// Schedule books the meeting, persists the interview, notifies both parties and queues the reminder.
// Nothing is stored when the meeting cannot be booked.
func (s *InterviewService) Schedule(ctx context.Context, in InterviewInput, interviewerEmail string) (*entity.Interview, error) {
	stage, err := parseStage(in.PipelineStage)
	if err != nil {
		return nil, err
	}
	c, err := s.Candidates.GetByID(ctx, in.CandidateID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCandidateNotFound
	}

	start := in.Date.UTC()
	link, err := s.Meetings.Book(ctx, MeetingRequest{
		Summary:     "Interview with " + c.Name,
		Description: string(stage) + " interview for " + c.Name,
		Start:       start,
		End:         start.Add(entity.InterviewSlot),
		Attendees:   []string{c.Email, interviewerEmail},
	})
	if err != nil {
		return nil, &UpstreamError{Message: "Could not generate Meet link", Err: err}
	}

	iv := &entity.Interview{
		CandidateID:      c.ID,
		PipelineStage:    stage,
		InterviewerEmail: interviewerEmail,
		Date:             start,
		MeetLink:         link,
	}
	if err := s.Interviews.Create(ctx, iv); err != nil {
		return nil, err
	}
	iv.Candidate = &entity.CandidateRef{ID: c.ID, Name: c.Name, Email: c.Email}

	_, _ = sendToParties(ctx, s.Notifier, s.Config, s.Logger, mailtpl.InterviewScheduled, iv, nil)

	if at, ok := reminderAt(start, s.now(), s.Config.ReminderLead); ok {
		job := &entity.ScheduledJob{
			Kind:    entity.JobInterviewReminder,
			RefID:   iv.ID,
			RunAt:   at,
			Payload: map[string]string{"candidate": c.ID},
		}
		if err := s.Jobs.Create(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("interview_id", iv.ID).Error("reminder job not created")
		}
	}
	return iv, nil
}

// sendToParties sends one templated email to the candidate and one to the interviewer,
// skipping addresses in done. It returns the addresses that were sent to; failures are
// logged and the first one is returned.
func sendToParties(ctx context.Context, n Notifier, cfg *config.Config, logger logrus.FieldLogger, template string, iv *entity.Interview, done map[string]bool) ([]string, error) {
	var (
		sent  []string
		first error
	)
	recipients := []struct{ name, email string }{
		{iv.Candidate.Name, iv.Candidate.Email},
		{"", iv.InterviewerEmail},
	}
	for _, r := range recipients {
		if r.email == "" || done[r.email] {
			continue
		}
		err := dispatch(ctx, n, logger, mailer.EmailJob{
			To:       r.email,
			Template: template,
			Data: mailtpl.NewData(cfg, template, r.name, r.email,
				mailtpl.WithInterview(iv.Candidate.Name, iv.InterviewerEmail, string(iv.PipelineStage), iv.MeetLink, iv.Date),
			),
		})
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		sent = append(sent, r.email)
	}
	return sent, first
}

func (s *InterviewService) List(ctx context.Context) ([]entity.Interview, error) {
	return s.Interviews.List(ctx)
}

func (s *InterviewService) Get(ctx context.Context, id string) (*entity.Interview, error) {
	iv, err := s.Interviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, ErrInterviewNotFound
	}
	return iv, nil
}

// Update changes the stage and/or date. A new date moves the pending reminder.
func (s *InterviewService) Update(ctx context.Context, id string, stage *string, date *time.Time) (*entity.Interview, error) {
	if stage == nil && date == nil {
		return nil, ErrNothingToUpdate
	}
	var st entity.InterviewStage
	if stage != nil {
		var err error
		if st, err = parseStage(*stage); err != nil {
			return nil, err
		}
	}
	iv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if stage != nil {
		iv.PipelineStage = st
	}
	moved := date != nil && !date.UTC().Equal(iv.Date)
	if date != nil {
		iv.Date = date.UTC()
	}
	if err := s.Interviews.Update(ctx, iv); err != nil {
		return nil, err
	}
	if moved {
		s.rescheduleReminder(ctx, iv)
	}
	return iv, nil
}

func (s *InterviewService) rescheduleReminder(ctx context.Context, iv *entity.Interview) {
	log := s.Logger.WithField("interview_id", iv.ID)
	at, ok := reminderAt(iv.Date, s.now(), s.Config.ReminderLead)
	if !ok {
		if _, err := s.Jobs.CancelByRef(ctx, entity.JobInterviewReminder, iv.ID); err != nil {
			log.WithError(err).Warn("cancel reminder failed")
		}
		return
	}
	n, err := s.Jobs.RescheduleByRef(ctx, entity.JobInterviewReminder, iv.ID, at)
	if err != nil {
		log.WithError(err).Warn("reschedule reminder failed")
		return
	}
	if n > 0 {
		return
	}
	// the earlier reminder already ran or never existed
	job := &entity.ScheduledJob{Kind: entity.JobInterviewReminder, RefID: iv.ID, RunAt: at, Payload: map[string]string{"candidate": iv.CandidateID}}
	if err := s.Jobs.Create(ctx, job); err != nil {
		log.WithError(err).Error("reminder job not created")
	}
}

func (s *InterviewService) Delete(ctx context.Context, id string) error {
	ok, err := s.Interviews.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInterviewNotFound
	}
	if _, err := s.Jobs.CancelByRef(ctx, entity.JobInterviewReminder, id); err != nil {
		s.Logger.WithError(err).WithField("interview_id", id).Warn("cancel reminder failed")
	}
	return nil
}
