package calendar

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/nexcruit/ats-backend/internal/application"
)

// Placeholder hands out unique public meeting-room links when no calendar is configured.
type Placeholder struct {
	BaseURL string
}

func NewPlaceholder(baseURL string) *Placeholder {
	return &Placeholder{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Placeholder) Book(ctx context.Context, _ application.MeetingRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.BaseURL + "/nexcruit-" + uuid.NewString(), nil
}
