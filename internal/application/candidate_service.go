package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/pkg/helpers"
	"github.com/nexcruit/ats-backend/pkg/mailer"
	mailtpl "github.com/nexcruit/ats-backend/pkg/mailer/templates"
	"github.com/nexcruit/ats-backend/pkg/resume"
	"github.com/nexcruit/ats-backend/pkg/upload"
)

const (
	ResumeFolder     = "resumes"
	AssessmentFolder = "assessments"
)

type CandidateInput struct {
	Name              string
	Email             string
	Phone             string
	References        string
	Technology        string
	Level             string
	SalaryExpectation *float64
	Experience        *float64
}

// CandidatePatch holds the fields of a partial update; nil means unchanged.
type CandidatePatch struct {
	Name              *string
	Email             *string
	Phone             *string
	References        *string
	Technology        *string
	Level             *string
	SalaryExpectation *float64
	Experience        *float64
	CVURL             *string
	Status            *string
}

type CandidateQuery struct {
	Search     string
	Technology string
	Status     string
	// Q is a free-text query answered by the search index when one is configured.
	Q string
}

// CandidateDetail is a candidate with its letters and assessments populated.
type CandidateDetail struct {
	entity.Candidate
	Letters     []entity.Letter     `json:"letters"`
	Assessments []entity.Assessment `json:"assessments"`
}

type CandidateService struct {
	Candidates  repo.CandidateRepository
	Letters     repo.LetterRepository
	Assessments repo.AssessmentRepository
	Storage     FileStorage
	Parser      ResumeParser
	Index       CandidateIndex // optional
	Notifier    Notifier
	Config      *config.Config
	Logger      logrus.FieldLogger
}

func NewCandidateService(candidates repo.CandidateRepository, letters repo.LetterRepository, assessments repo.AssessmentRepository, storage FileStorage, parser ResumeParser, index CandidateIndex, notifier Notifier, cfg *config.Config, logger logrus.FieldLogger) *CandidateService {
	return &CandidateService{
		Candidates:  candidates,
		Letters:     letters,
		Assessments: assessments,
		Storage:     storage,
		Parser:      parser,
		Index:       index,
		Notifier:    notifier,
		Config:      cfg,
		Logger:      logger,
	}
}

// Create parses the resume, stores it and persists the candidate.
func (s *CandidateService) Create(ctx context.Context, in CandidateInput, file *upload.File) (*entity.Candidate, resume.Summary, error) {
	summary, err := s.Parser.Parse(ctx, file.Reader(), file.MIME)
	if err != nil {
		if errors.Is(err, resume.ErrUnreadable) {
			s.Logger.WithError(err).WithField("mime", file.MIME).Info("resume rejected")
			return nil, resume.Summary{}, ErrUnparseableResume
		}
		return nil, resume.Summary{}, err
	}
	candidatesParsed.Add(1)

	cvURL, err := s.Storage.Save(ctx, ResumeFolder, file)
	if err != nil {
		return nil, resume.Summary{}, err
	}

	c := &entity.Candidate{
		Name:              strings.TrimSpace(in.Name),
		Email:             helpers.NormalizeEmail(in.Email),
		Phone:             strings.TrimSpace(in.Phone),
		References:        strings.TrimSpace(in.References),
		Technology:        strings.TrimSpace(in.Technology),
		Level:             strings.TrimSpace(in.Level),
		SalaryExpectation: in.SalaryExpectation,
		Experience:        in.Experience,
		CVURL:             cvURL,
		Status:            entity.StatusShortlisted,
		Skills:            summary.Skills,
		ResumeScore:       summary.Score,
	}
	if err := s.Candidates.Create(ctx, c); err != nil {
		discardUpload(ctx, s.Storage, s.Logger, cvURL)
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, resume.Summary{}, ErrDuplicateCV
		}
		return nil, resume.Summary{}, err
	}
	s.reindex(ctx, c)
	return c, summary, nil
}

// discardUpload removes a stored file whose record could not be saved.
func discardUpload(ctx context.Context, st FileStorage, logger logrus.FieldLogger, fileURL string) {
	if err := st.Delete(context.WithoutCancel(ctx), fileURL); err != nil {
		logger.WithError(err).WithField("file", fileURL).Warn("orphaned upload not removed")
	}
}

func (s *CandidateService) List(ctx context.Context, q CandidateQuery) ([]entity.Candidate, error) {
	f := entity.CandidateFilter{
		Search:     strings.TrimSpace(q.Search),
		Technology: strings.TrimSpace(q.Technology),
		Status:     strings.TrimSpace(q.Status),
	}
	if text := strings.TrimSpace(q.Q); text != "" {
		ids, err := s.search(ctx, text)
		switch {
		case err != nil:
			s.Logger.WithError(err).Warn("candidate search failed, falling back to name match")
			if f.Search == "" {
				f.Search = text
			}
		case ids == nil:
			if f.Search == "" {
				f.Search = text
			}
		default:
			f.IDs = ids
		}
	}
	return s.Candidates.List(ctx, f)
}

// search returns nil ids when no index is configured.
func (s *CandidateService) search(ctx context.Context, text string) ([]string, error) {
	if s.Index == nil {
		return nil, nil
	}
	ids, err := s.Index.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *CandidateService) Get(ctx context.Context, id string) (*entity.Candidate, error) {
	c, err := s.Candidates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCandidateNotFound
	}
	return c, nil
}

func (s *CandidateService) GetDetail(ctx context.Context, id string) (*CandidateDetail, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	letters, err := s.Letters.ListByIDs(ctx, c.Letters)
	if err != nil {
		return nil, err
	}
	assessments, err := s.Assessments.ListByIDs(ctx, c.Assessments)
	if err != nil {
		return nil, err
	}
	return &CandidateDetail{Candidate: *c, Letters: letters, Assessments: assessments}, nil
}

func invalidStatus() *ValidationError {
	names := make([]string, 0, len(entity.CandidateStatuses))
	for _, st := range entity.CandidateStatuses {
		names = append(names, string(st))
	}
	msg := "Invalid status. Must be one of: " + strings.Join(names, ", ")
	return &ValidationError{Message: msg, Fields: map[string]string{"status": msg}}
}

func (s *CandidateService) Update(ctx context.Context, id string, p CandidatePatch) (*entity.Candidate, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != nil {
		st := entity.CandidateStatus(strings.TrimSpace(*p.Status))
		if !st.Valid() {
			return nil, invalidStatus()
		}
		c.Status = st
	}
	setString(&c.Name, p.Name)
	setString(&c.Phone, p.Phone)
	setString(&c.References, p.References)
	setString(&c.Technology, p.Technology)
	setString(&c.Level, p.Level)
	setString(&c.CVURL, p.CVURL)
	if p.Email != nil {
		c.Email = helpers.NormalizeEmail(*p.Email)
	}
	if p.SalaryExpectation != nil {
		c.SalaryExpectation = p.SalaryExpectation
	}
	if p.Experience != nil {
		c.Experience = p.Experience
	}
	if err := s.Candidates.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateCV
		}
		return nil, err
	}
	s.reindex(ctx, c)
	return c, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// Delete removes only the candidate; its letters, assessments and interviews are kept.
func (s *CandidateService) Delete(ctx context.Context, id string) error {
	ok, err := s.Candidates.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCandidateNotFound
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("candidate_id", id).Warn("search index remove failed")
		}
	}
	return nil
}

// RequestBackgroundCheck emails a reference-check request about the candidate.
func (s *CandidateService) RequestBackgroundCheck(ctx context.Context, id, refEmail string) error {
	refEmail = helpers.NormalizeEmail(refEmail)
	if refEmail == "" {
		return ErrRefEmailRequired
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return dispatch(ctx, s.Notifier, s.Logger, mailer.EmailJob{
		To:       refEmail,
		Template: mailtpl.BackgroundCheck,
		Data: mailtpl.NewData(s.Config, "background_check", "", refEmail,
			mailtpl.WithCandidate(c.Name),
			mailtpl.WithRefEmail(refEmail),
		),
	})
}

func (s *CandidateService) reindex(ctx context.Context, c *entity.Candidate) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, *c); err != nil {
		s.Logger.WithError(err).WithField("candidate_id", c.ID).Warn("search index update failed")
	}
}
