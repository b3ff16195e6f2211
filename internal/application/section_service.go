package application

import (
	"context"
	"strings"

	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
)

type SectionService struct {
	Sections repo.SectionRepository
}

func NewSectionService(sections repo.SectionRepository) *SectionService {
	return &SectionService{Sections: sections}
}

func (s *SectionService) Get(ctx context.Context) ([]string, error) {
	return s.Sections.Get(ctx)
}

// Save replaces the whole list. Names are trimmed and blank entries dropped.
func (s *SectionService) Save(ctx context.Context, sections []string) ([]string, error) {
	clean := make([]string, 0, len(sections))
	for _, name := range sections {
		if name = strings.TrimSpace(name); name != "" {
			clean = append(clean, name)
		}
	}
	return s.Sections.Save(ctx, clean)
}
