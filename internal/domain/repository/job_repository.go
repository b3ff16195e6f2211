package repository

import (
	"context"
	"time"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

// JobRepository persists scheduled jobs and hands them out to sweepers.
type JobRepository interface {
	Create(ctx context.Context, j *entity.ScheduledJob) error
	// ClaimDue atomically leases the oldest due job, or returns (nil, nil) when none is due.
	ClaimDue(ctx context.Context, now time.Time, lease time.Duration) (*entity.ScheduledJob, error)
	// Complete and Retry only apply while the caller still holds the lease it
	// claimed j with; otherwise they return ErrLeaseLost.
	Complete(ctx context.Context, j *entity.ScheduledJob, note string) error
	// Retry puts a job back to pending at runAt with j.Payload, or marks it failed when runAt is nil.
	Retry(ctx context.Context, j *entity.ScheduledJob, lastError string, runAt *time.Time) error
	CancelByRef(ctx context.Context, kind, refID string) (int64, error)
	RescheduleByRef(ctx context.Context, kind, refID string, runAt time.Time) (int64, error)
}

type AuditRepository interface {
	Insert(ctx context.Context, a entity.AuditLog) error
}
