package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/pkg/upload"
)

type AssessmentInput struct {
	Title   string
	Score   float64
	Remarks string
}

type AssessmentService struct {
	Assessments repo.AssessmentRepository
	Candidates  repo.CandidateRepository
	Storage     FileStorage
	Logger      logrus.FieldLogger
}

func NewAssessmentService(assessments repo.AssessmentRepository, candidates repo.CandidateRepository, storage FileStorage, logger logrus.FieldLogger) *AssessmentService {
	return &AssessmentService{Assessments: assessments, Candidates: candidates, Storage: storage, Logger: logger}
}

// Add stores the file, records the assessment on the candidate and returns the candidate's assessments.
func (s *AssessmentService) Add(ctx context.Context, candidateID string, in AssessmentInput, file *upload.File) ([]entity.Assessment, error) {
	c, err := s.Candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCandidateNotFound
	}
	fileURL, err := s.Storage.Save(ctx, AssessmentFolder, file)
	if err != nil {
		return nil, err
	}
	a := &entity.Assessment{
		CandidateID: c.ID,
		Title:       strings.TrimSpace(in.Title),
		Score:       in.Score,
		Remarks:     strings.TrimSpace(in.Remarks),
		FileURL:     fileURL,
	}
	if err := s.Assessments.Create(ctx, a); err != nil {
		discardUpload(ctx, s.Storage, s.Logger, fileURL)
		return nil, err
	}
	if err := s.Candidates.PushAssessment(ctx, c.ID, a.ID); err != nil {
		return nil, err
	}
	return s.Assessments.ListByCandidate(ctx, c.ID)
}

func (s *AssessmentService) ListByCandidate(ctx context.Context, candidateID string) ([]entity.Assessment, error) {
	return s.Assessments.ListByCandidate(ctx, candidateID)
}

func (s *AssessmentService) Get(ctx context.Context, id string) (*entity.Assessment, error) {
	a, err := s.Assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAssessmentNotFound
	}
	return a, nil
}
