package application

import (
	"context"
	"time"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/pkg/helpers"
)

const timeToHireDays = 7

type PipelineItem struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type DailyValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type Stats struct {
	TotalCandidates int64              `json:"totalCandidates"`
	InterviewsToday int64              `json:"interviewsToday"`
	LettersSent     int64              `json:"lettersSent"`
	AvgTimeToHire   float64            `json:"avgTimeToHire"`
	Pipeline        []PipelineItem     `json:"pipeline"`
	TimeToHire      []DailyValue       `json:"timeToHire"`
	ByTech          []entity.TechCount `json:"byTech"`
}

// StatsService recomputes the dashboard figures on every call.
type StatsService struct {
	Candidates repo.CandidateRepository
	Interviews repo.InterviewRepository
	Letters    repo.LetterRepository
	Offers     repo.OfferRepository

	now func() time.Time
}

func NewStatsService(candidates repo.CandidateRepository, interviews repo.InterviewRepository, letters repo.LetterRepository, offers repo.OfferRepository) *StatsService {
	return &StatsService{
		Candidates: candidates,
		Interviews: interviews,
		Letters:    letters,
		Offers:     offers,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	now := s.now()
	st := &Stats{}
	var err error

	if st.TotalCandidates, err = s.Candidates.Count(ctx); err != nil {
		return nil, err
	}
	from, to := helpers.DayWindow(now)
	if st.InterviewsToday, err = s.Interviews.CountBetween(ctx, from, to); err != nil {
		return nil, err
	}
	letters, err := s.Letters.Count(ctx)
	if err != nil {
		return nil, err
	}
	offers, err := s.Offers.Count(ctx)
	if err != nil {
		return nil, err
	}
	st.LettersSent = letters + offers

	spans, err := s.Candidates.HireSpans(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	st.AvgTimeToHire = AverageDaysToHire(spans)

	st.Pipeline = make([]PipelineItem, 0, len(entity.PipelineStatuses))
	for _, status := range entity.PipelineStatuses {
		n, err := s.Candidates.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		st.Pipeline = append(st.Pipeline, PipelineItem{Name: string(status), Value: n})
	}

	st.TimeToHire = BuildTimeToHireSeries(spans, now)

	if st.ByTech, err = s.Candidates.CountByTechnology(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

func daysBetween(h entity.HireSpan) float64 {
	return h.UpdatedAt.Sub(h.CreatedAt).Hours() / 24
}

// AverageDaysToHire is the mean hire duration in days, to one decimal; 0 without hires.
func AverageDaysToHire(spans []entity.HireSpan) float64 {
	if len(spans) == 0 {
		return 0
	}
	var total float64
	for _, h := range spans {
		total += daysBetween(h)
	}
	return helpers.Round1(total / float64(len(spans)))
}

// BuildTimeToHireSeries returns exactly seven days ending on now's UTC date.
// Each value averages the hires last updated that day; days without hires are 0.
func BuildTimeToHireSeries(spans []entity.HireSpan, now time.Time) []DailyValue {
	type acc struct {
		sum float64
		n   int
	}
	byDay := map[string]*acc{}
	for _, h := range spans {
		key := helpers.DayKey(h.UpdatedAt)
		a := byDay[key]
		if a == nil {
			a = &acc{}
			byDay[key] = a
		}
		a.sum += daysBetween(h)
		a.n++
	}

	today, _ := helpers.DayWindow(now)
	series := make([]DailyValue, 0, timeToHireDays)
	for i := timeToHireDays - 1; i >= 0; i-- {
		key := helpers.DayKey(today.AddDate(0, 0, -i))
		v := 0.0
		if a := byDay[key]; a != nil {
			v = helpers.Round1(a.sum / float64(a.n))
		}
		series = append(series, DailyValue{Date: key, Value: v})
	}
	return series
}
