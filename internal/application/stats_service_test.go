package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

func TestAverageDaysToHire(t *testing.T) {
	assert.Zero(t, AverageDaysToHire(nil))

	spans := []entity.HireSpan{
		{CreatedAt: fixedNow.Add(-48 * time.Hour), UpdatedAt: fixedNow},
		{CreatedAt: fixedNow.Add(-36 * time.Hour), UpdatedAt: fixedNow},
	}
	assert.Equal(t, 1.8, AverageDaysToHire(spans))
}

func TestBuildTimeToHireSeries(t *testing.T) {
	spans := []entity.HireSpan{
		{CreatedAt: fixedNow.AddDate(0, 0, -4), UpdatedAt: fixedNow},
		{CreatedAt: fixedNow.AddDate(0, 0, -2), UpdatedAt: fixedNow.Add(-time.Hour)},
		{CreatedAt: fixedNow.AddDate(0, 0, -10), UpdatedAt: fixedNow.AddDate(0, 0, -3)},
		{CreatedAt: fixedNow.AddDate(0, 0, -30), UpdatedAt: fixedNow.AddDate(0, 0, -20)},
	}

	series := BuildTimeToHireSeries(spans, fixedNow)
	require.Len(t, series, 7)
	assert.Equal(t, "2025-03-04", series[0].Date)
	assert.Equal(t, "2025-03-10", series[6].Date)
	assert.Equal(t, 3.0, series[6].Value)
	assert.Equal(t, 7.0, series[3].Value)
	for _, i := range []int{0, 1, 2, 4, 5} {
		assert.Zero(t, series[i].Value, series[i].Date)
	}

	empty := BuildTimeToHireSeries(nil, fixedNow)
	assert.Len(t, empty, 7)
}

func TestStatsGet(t *testing.T) {
	ctx := context.Background()
	candidates := newMemCandidates()
	interviews := newMemInterviews(candidates)
	letters := &memLetters{}
	offers := &memOffers{}
	svc := NewStatsService(candidates, interviews, letters, offers)
	svc.now = func() time.Time { return fixedNow }

	hired := candidates.put(entity.Candidate{Name: "A", Technology: "Backend", Status: entity.StatusHired, CreatedAt: fixedNow.AddDate(0, 0, -5), UpdatedAt: fixedNow})
	candidates.put(entity.Candidate{Name: "B", Technology: "Backend", Status: entity.StatusShortlisted})
	candidates.put(entity.Candidate{Name: "C", Technology: "Frontend", Status: entity.StatusRejected})

	require.NoError(t, interviews.Create(ctx, &entity.Interview{CandidateID: hired.ID, Date: fixedNow.Add(3 * time.Hour)}))
	require.NoError(t, interviews.Create(ctx, &entity.Interview{CandidateID: hired.ID, Date: fixedNow.AddDate(0, 0, 1)}))
	require.NoError(t, letters.Create(ctx, &entity.Letter{CandidateID: hired.ID}))
	require.NoError(t, offers.Create(ctx, &entity.Offer{CandidateID: hired.ID}))

	st, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.TotalCandidates)
	assert.Equal(t, int64(1), st.InterviewsToday)
	assert.Equal(t, int64(2), st.LettersSent)
	assert.Equal(t, 5.0, st.AvgTimeToHire)

	require.Len(t, st.Pipeline, 5)
	assert.Equal(t, PipelineItem{Name: "Shortlisted", Value: 1}, st.Pipeline[0])
	assert.Equal(t, PipelineItem{Name: "Hired", Value: 1}, st.Pipeline[4])

	require.Len(t, st.TimeToHire, 7)
	assert.Equal(t, 5.0, st.TimeToHire[6].Value)

	assert.Equal(t, []entity.TechCount{{Technology: "Backend", Count: 2}, {Technology: "Frontend", Count: 1}}, st.ByTech)
}
