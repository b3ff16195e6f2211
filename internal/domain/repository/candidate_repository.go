package repository

import (
	"context"
	"time"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type CandidateRepository interface {
	Create(ctx context.Context, c *entity.Candidate) error
	GetByID(ctx context.Context, id string) (*entity.Candidate, error)
	List(ctx context.Context, f entity.CandidateFilter) ([]entity.Candidate, error)
	Update(ctx context.Context, c *entity.Candidate) error
	Delete(ctx context.Context, id string) (bool, error)
	PushLetter(ctx context.Context, id, letterID string) error
	PushAssessment(ctx context.Context, id, assessmentID string) error

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.CandidateStatus) (int64, error)
	// HireSpans returns hired candidates last updated at or after since.
	HireSpans(ctx context.Context, since time.Time) ([]entity.HireSpan, error)
	CountByTechnology(ctx context.Context) ([]entity.TechCount, error)
}
