package application

import (
	"context"

	"github.com/nexcruit/ats-backend/pkg/export"
)

// ExportService renders candidate listings as spreadsheets.
type ExportService struct {
	CandidateSvc *CandidateService
}

func NewExportService(candidates *CandidateService) *ExportService {
	return &ExportService{CandidateSvc: candidates}
}

// Candidates exports the candidates matching q as an XLSX workbook.
func (s *ExportService) Candidates(ctx context.Context, q CandidateQuery) ([]byte, error) {
	list, err := s.CandidateSvc.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return export.Candidates(list)
}
