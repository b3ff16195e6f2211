package application

import (
	"context"
	"io"
	"time"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	"github.com/nexcruit/ats-backend/pkg/mailer"
	"github.com/nexcruit/ats-backend/pkg/resume"
	"github.com/nexcruit/ats-backend/pkg/upload"
)

// Notifier hands an email to the delivery pipeline (queue or direct transport).
type Notifier interface {
	Notify(ctx context.Context, job mailer.EmailJob) error
}

// FileStorage persists uploaded files and returns a URL clients can fetch them from.
type FileStorage interface {
	Save(ctx context.Context, folder string, f *upload.File) (string, error)
	// Delete removes a file by the URL Save returned.
	Delete(ctx context.Context, fileURL string) error
}

type ResumeParser interface {
	Parse(ctx context.Context, r io.Reader, mimeType string) (resume.Summary, error)
}

type MeetingRequest struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

// MeetingScheduler books a calendar slot and returns the video-call link.
type MeetingScheduler interface {
	Book(ctx context.Context, req MeetingRequest) (string, error)
}

// CandidateIndex is the full-text search side of candidates.
type CandidateIndex interface {
	Index(ctx context.Context, c entity.Candidate) error
	Remove(ctx context.Context, id string) error
	// Search returns matching candidate ids, best match first.
	Search(ctx context.Context, query string) ([]string, error)
}

type GoogleIdentity struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

// IdentityVerifier validates a Google ID token credential.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// Session is the server-side record behind a token pair.
type Session struct {
	UserID    string
	Email     string
	Name      string
	SessionID string
}

// SessionStore keeps one active session per user and burns single-use token ids.
type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	// Get returns (nil, nil) when the user has no session.
	Get(ctx context.Context, userID string) (*Session, error)
	Delete(ctx context.Context, userID string) error
	// ClaimOnce reports false when key was already claimed.
	ClaimOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
