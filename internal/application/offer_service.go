package application

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/pkg/mailer"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// FillPlaceholders replaces {{field}} tokens from values. Unknown tokens are left as written.
func FillPlaceholders(text string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(tok string) string {
		key := placeholderPattern.FindStringSubmatch(tok)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return tok
	})
}

func textToHTML(body string) string {
	return "<div>" + strings.ReplaceAll(html.EscapeString(body), "\n", "<br>") + "</div>"
}

type OfferService struct {
	Offers     repo.OfferRepository
	Templates  repo.OfferTemplateRepository
	Candidates repo.CandidateRepository
	Notifier   Notifier
	Logger     logrus.FieldLogger
}

func NewOfferService(offers repo.OfferRepository, templates repo.OfferTemplateRepository, candidates repo.CandidateRepository, notifier Notifier, logger logrus.FieldLogger) *OfferService {
	return &OfferService{Offers: offers, Templates: templates, Candidates: candidates, Notifier: notifier, Logger: logger}
}

// Create renders a template for a Hired candidate, emails it and returns all of the candidate's offers.
func (s *OfferService) Create(ctx context.Context, candidateID, templateID string, placeholders map[string]string) ([]entity.Offer, error) {
	c, err := s.Candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCandidateNotFound
	}
	t, err := s.Templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTemplateNotFound
	}
	if c.Status != entity.StatusHired {
		return nil, ErrNotHired
	}

	values := map[string]string{
		"name":       c.Name,
		"email":      c.Email,
		"technology": c.Technology,
		"level":      c.Level,
	}
	for k, v := range placeholders {
		values[k] = v
	}
	if placeholders == nil {
		placeholders = map[string]string{}
	}

	o := &entity.Offer{
		CandidateID:  c.ID,
		TemplateID:   t.ID,
		Placeholders: placeholders,
		Subject:      FillPlaceholders(t.Subject, values),
		Body:         FillPlaceholders(t.Body, values),
	}
	err = dispatch(ctx, s.Notifier, s.Logger, mailer.EmailJob{
		To:      c.Email,
		Subject: o.Subject,
		Text:    o.Body,
		HTML:    textToHTML(o.Body),
	})
	if err == nil {
		o.SentTo = c.Email
	}
	if err := s.Offers.Create(ctx, o); err != nil {
		return nil, err
	}
	return s.Offers.ListByCandidate(ctx, c.ID)
}

func (s *OfferService) List(ctx context.Context, candidateID string) ([]entity.Offer, error) {
	return s.Offers.ListByCandidate(ctx, candidateID)
}

func (s *OfferService) Get(ctx context.Context, id string) (*entity.Offer, error) {
	o, err := s.Offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOfferNotFound
	}
	return o, nil
}
