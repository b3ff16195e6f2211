package application

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/pkg/mailer"
	mailtpl "github.com/nexcruit/ats-backend/pkg/mailer/templates"
)

type LetterInput struct {
	TemplateType       string
	Position           string
	Technology         string
	StartingDate       *time.Time
	Salary             *float64
	ProbationDate      *time.Time
	AcceptanceDeadline *time.Time
}

type LetterService struct {
	Letters    repo.LetterRepository
	Candidates repo.CandidateRepository
	Notifier   Notifier
	Config     *config.Config
	Logger     logrus.FieldLogger

	now func() time.Time
}

func NewLetterService(letters repo.LetterRepository, candidates repo.CandidateRepository, notifier Notifier, cfg *config.Config, logger logrus.FieldLogger) *LetterService {
	return &LetterService{
		Letters:    letters,
		Candidates: candidates,
		Notifier:   notifier,
		Config:     cfg,
		Logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func parseLetterType(v string) (entity.LetterType, error) {
	t := entity.LetterType(strings.TrimSpace(v))
	if !t.Valid() {
		msg := "Invalid templateType. Must be one of: offer, rejection"
		return "", &ValidationError{Message: msg, Fields: map[string]string{"templateType": msg}}
	}
	return t, nil
}

func (in LetterInput) missingOfferFields() []string {
	var missing []string
	if strings.TrimSpace(in.Position) == "" {
		missing = append(missing, "position")
	}
	if strings.TrimSpace(in.Technology) == "" {
		missing = append(missing, "technology")
	}
	if in.StartingDate == nil {
		missing = append(missing, "startingDate")
	}
	if in.Salary == nil {
		missing = append(missing, "salary")
	}
	if in.ProbationDate == nil {
		missing = append(missing, "probationDate")
	}
	if in.AcceptanceDeadline == nil {
		missing = append(missing, "acceptanceDeadline")
	}
	return missing
}

func (s *LetterService) candidate(ctx context.Context, id string) (*entity.Candidate, error) {
	c, err := s.Candidates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCandidateNotFound
	}
	return c, nil
}

// Create validates and stores a letter, links it to the candidate and emails it.
// A failed send leaves the letter unsent; it can be re-sent later.
func (s *LetterService) Create(ctx context.Context, candidateID string, in LetterInput) (*entity.Letter, error) {
	typ, err := parseLetterType(in.TemplateType)
	if err != nil {
		return nil, err
	}
	if typ == entity.LetterOffer {
		if missing := in.missingOfferFields(); len(missing) > 0 {
			return nil, missingFields("Missing fields for offer: ", missing)
		}
	}
	c, err := s.candidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if typ == entity.LetterOffer && c.Status != entity.StatusHired {
		return nil, ErrNotHired
	}

	l := &entity.Letter{
		CandidateID:        c.ID,
		TemplateType:       typ,
		Position:           strings.TrimSpace(in.Position),
		Technology:         strings.TrimSpace(in.Technology),
		StartingDate:       in.StartingDate,
		ProbationDate:      in.ProbationDate,
		AcceptanceDeadline: in.AcceptanceDeadline,
	}
	if in.Salary != nil {
		l.Salary = *in.Salary
	}
	if err := s.Letters.Create(ctx, l); err != nil {
		return nil, err
	}
	if err := s.Candidates.PushLetter(ctx, c.ID, l.ID); err != nil {
		return nil, err
	}
	if err := s.deliver(ctx, c, l); err != nil {
		s.Logger.WithError(err).WithField("letter_id", l.ID).Warn("letter saved but not sent")
	}
	return l, nil
}

// Send re-sends a stored letter. Offers are still gated on the candidate being Hired.
func (s *LetterService) Send(ctx context.Context, candidateID, letterID string) (*entity.Letter, error) {
	c, err := s.candidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	l, err := s.Get(ctx, candidateID, letterID)
	if err != nil {
		return nil, err
	}
	if l.TemplateType == entity.LetterOffer && c.Status != entity.StatusHired {
		return nil, ErrNotHired
	}
	if err := s.deliver(ctx, c, l); err != nil {
		return nil, &UpstreamError{Message: "Could not send letter", Err: err}
	}
	return l, nil
}

func (s *LetterService) deliver(ctx context.Context, c *entity.Candidate, l *entity.Letter) error {
	tpl := mailtpl.RejectionLetter
	if l.TemplateType == entity.LetterOffer {
		tpl = mailtpl.OfferLetter
	}
	salary := ""
	if l.Salary != 0 {
		salary = strconv.FormatFloat(l.Salary, 'f', -1, 64)
	}
	err := dispatch(ctx, s.Notifier, s.Logger, mailer.EmailJob{
		To:       c.Email,
		Template: tpl,
		Data: mailtpl.NewData(s.Config, string(l.TemplateType), c.Name, c.Email,
			mailtpl.WithLetter(mailtpl.LetterFields{
				Position:           l.Position,
				Technology:         l.Technology,
				Salary:             salary,
				StartingDate:       l.StartingDate,
				ProbationDate:      l.ProbationDate,
				AcceptanceDeadline: l.AcceptanceDeadline,
			}),
		),
	})
	if err != nil {
		return err
	}
	sentAt := s.now()
	l.SentTo, l.SentAt = c.Email, &sentAt
	return s.Letters.Update(ctx, l)
}

func (s *LetterService) List(ctx context.Context, candidateID, typ string) ([]entity.Letter, error) {
	var t entity.LetterType
	if strings.TrimSpace(typ) != "" {
		var err error
		if t, err = parseLetterType(typ); err != nil {
			return nil, err
		}
	}
	return s.Letters.ListByCandidate(ctx, candidateID, t)
}

func (s *LetterService) Get(ctx context.Context, candidateID, letterID string) (*entity.Letter, error) {
	l, err := s.Letters.GetForCandidate(ctx, candidateID, letterID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLetterNotFound
	}
	return l, nil
}
