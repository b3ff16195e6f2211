package repository

import (
	"context"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type AssessmentRepository interface {
	Create(ctx context.Context, a *entity.Assessment) error
	GetByID(ctx context.Context, id string) (*entity.Assessment, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]entity.Assessment, error)
	ListByIDs(ctx context.Context, ids []string) ([]entity.Assessment, error)
}

type LetterRepository interface {
	Create(ctx context.Context, l *entity.Letter) error
	GetForCandidate(ctx context.Context, candidateID, letterID string) (*entity.Letter, error)
	// ListByCandidate lists newest first; an empty type returns both kinds.
	ListByCandidate(ctx context.Context, candidateID string, typ entity.LetterType) ([]entity.Letter, error)
	ListByIDs(ctx context.Context, ids []string) ([]entity.Letter, error)
	Update(ctx context.Context, l *entity.Letter) error
	Count(ctx context.Context) (int64, error)
}

type OfferRepository interface {
	Create(ctx context.Context, o *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]entity.Offer, error)
	Count(ctx context.Context) (int64, error)
}

type OfferTemplateRepository interface {
	Create(ctx context.Context, t *entity.OfferTemplate) error
	GetByID(ctx context.Context, id string) (*entity.OfferTemplate, error)
	List(ctx context.Context) ([]entity.OfferTemplate, error)
	Update(ctx context.Context, t *entity.OfferTemplate) error
	Delete(ctx context.Context, id string) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	ListByCandidate(ctx context.Context, candidateID string) ([]entity.Comment, error)
}

// SectionRepository stores the singleton list of pipeline sections.
type SectionRepository interface {
	// Get returns the stored sections, creating an empty singleton when none exists.
	Get(ctx context.Context) ([]string, error)
	Save(ctx context.Context, sections []string) ([]string, error)
}
