package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	mailtpl "github.com/nexcruit/ats-backend/pkg/mailer/templates"
)

type letterFixture struct {
	svc        *LetterService
	letters    *memLetters
	candidates *memCandidates
	notifier   *fakeNotifier
}

func newLetterFixture() *letterFixture {
	f := &letterFixture{letters: &memLetters{}, candidates: newMemCandidates(), notifier: &fakeNotifier{}}
	f.svc = NewLetterService(f.letters, f.candidates, f.notifier, testConfig(), testLogger())
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func offerInput() LetterInput {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	probation := start.AddDate(0, 3, 0)
	deadline := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	salary := 85000.0
	return LetterInput{
		TemplateType:       "offer",
		Position:           "Backend Engineer",
		Technology:         "Go",
		StartingDate:       &start,
		Salary:             &salary,
		ProbationDate:      &probation,
		AcceptanceDeadline: &deadline,
	}
}

func TestCreateOfferLetterRequiresHired(t *testing.T) {
	f := newLetterFixture()
	ctx := context.Background()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Status: entity.StatusTechnicalInterview})

	_, err := f.svc.Create(ctx, c.ID, offerInput())
	assert.ErrorIs(t, err, ErrNotHired)
	assert.Empty(t, f.letters.list)
	assert.Empty(t, f.notifier.sent())
}

func TestCreateOfferLetter(t *testing.T) {
	f := newLetterFixture()
	ctx := context.Background()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Status: entity.StatusHired})

	l, err := f.svc.Create(ctx, c.ID, offerInput())
	require.NoError(t, err)
	assert.Equal(t, entity.LetterOffer, l.TemplateType)
	assert.Equal(t, 85000.0, l.Salary)
	assert.Equal(t, "dana@example.com", l.SentTo)
	require.NotNil(t, l.SentAt)
	assert.True(t, fixedNow.Equal(*l.SentAt))

	jobs := f.notifier.sentTo("dana@example.com")
	require.Len(t, jobs, 1)
	assert.Equal(t, mailtpl.OfferLetter, jobs[0].Template)
	assert.Equal(t, "85000", jobs[0].Data["Salary"])
	assert.Equal(t, "April 1, 2025", jobs[0].Data["StartingDate"])

	stored, _ := f.candidates.GetByID(ctx, c.ID)
	assert.Equal(t, []string{l.ID}, stored.Letters)
}

func TestCreateOfferLetterMissingFieldsInOrder(t *testing.T) {
	f := newLetterFixture()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Status: entity.StatusHired})
	in := offerInput()
	in.Technology = ""
	in.Salary = nil
	in.AcceptanceDeadline = nil

	_, err := f.svc.Create(context.Background(), c.ID, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Missing fields for offer: technology, salary, acceptanceDeadline", verr.Message)
	assert.Len(t, verr.Fields, 3)
}

func TestCreateRejectionLetterNeedsNoHire(t *testing.T) {
	f := newLetterFixture()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Status: entity.StatusRejected})

	l, err := f.svc.Create(context.Background(), c.ID, LetterInput{TemplateType: "rejection"})
	require.NoError(t, err)
	assert.Equal(t, entity.LetterRejection, l.TemplateType)
	jobs := f.notifier.sentTo("dana@example.com")
	require.Len(t, jobs, 1)
	assert.Equal(t, mailtpl.RejectionLetter, jobs[0].Template)
}

func TestCreateLetterInvalidType(t *testing.T) {
	f := newLetterFixture()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Status: entity.StatusHired})

	_, err := f.svc.Create(context.Background(), c.ID, LetterInput{TemplateType: "welcome"})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = f.svc.Create(context.Background(), "missing", LetterInput{TemplateType: "rejection"})
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestCreateLetterSendFailureKeepsLetter(t *testing.T) {
	f := newLetterFixture()
	ctx := context.Background()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Status: entity.StatusRejected})
	f.notifier.err = errors.New("smtp down")

	l, err := f.svc.Create(ctx, c.ID, LetterInput{TemplateType: "rejection"})
	require.NoError(t, err)
	assert.Empty(t, l.SentTo)

	_, err = f.svc.Send(ctx, c.ID, l.ID)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)

	f.notifier.err = nil
	sent, err := f.svc.Send(ctx, c.ID, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", sent.SentTo)
	assert.Equal(t, "dana@example.com", f.letters.getByID(l.ID).SentTo)
}

func TestSendOfferAfterStatusChange(t *testing.T) {
	f := newLetterFixture()
	ctx := context.Background()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Status: entity.StatusHired})
	l, err := f.svc.Create(ctx, c.ID, offerInput())
	require.NoError(t, err)

	c.Status = entity.StatusRejected
	require.NoError(t, f.candidates.Update(ctx, c))
	_, err = f.svc.Send(ctx, c.ID, l.ID)
	assert.ErrorIs(t, err, ErrNotHired)
}

func TestListAndGetLetters(t *testing.T) {
	f := newLetterFixture()
	ctx := context.Background()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Status: entity.StatusHired})
	offer, err := f.svc.Create(ctx, c.ID, offerInput())
	require.NoError(t, err)
	rejection, err := f.svc.Create(ctx, c.ID, LetterInput{TemplateType: "rejection"})
	require.NoError(t, err)

	all, err := f.svc.List(ctx, c.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, rejection.ID, all[0].ID)

	offers, err := f.svc.List(ctx, c.ID, "offer")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, offer.ID, offers[0].ID)

	_, err = f.svc.List(ctx, c.ID, "memo")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = f.svc.Get(ctx, "other-candidate", offer.ID)
	assert.ErrorIs(t, err, ErrLetterNotFound)
}
