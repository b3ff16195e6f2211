package repository

import (
	"context"
	"time"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type InterviewRepository interface {
	Create(ctx context.Context, iv *entity.Interview) error
	GetByID(ctx context.Context, id string) (*entity.Interview, error)
	// List returns every interview, latest date first.
	List(ctx context.Context) ([]entity.Interview, error)
	Update(ctx context.Context, iv *entity.Interview) error
	Delete(ctx context.Context, id string) (bool, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
}
