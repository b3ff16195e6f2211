package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

func TestFillPlaceholders(t *testing.T) {
	values := map[string]string{"name": "Dana", "salary": "85,000"}

	assert.Equal(t, "Dear Dana, your salary is 85,000.", FillPlaceholders("Dear {{name}}, your salary is {{ salary }}.", values))
	assert.Equal(t, "Start on {{startDate}}", FillPlaceholders("Start on {{startDate}}", values))
	assert.Equal(t, "no tokens", FillPlaceholders("no tokens", values))
	assert.Equal(t, "{{ bad-key }}", FillPlaceholders("{{ bad-key }}", values))
}

func TestTextToHTMLEscapes(t *testing.T) {
	assert.Equal(t, "<div>a &lt;b&gt;<br>c</div>", textToHTML("a <b>\nc"))
}

type offerFixture struct {
	svc        *OfferService
	offers     *memOffers
	templates  *memTemplates
	candidates *memCandidates
	notifier   *fakeNotifier
	template   *entity.OfferTemplate
}

func newOfferFixture(t *testing.T) *offerFixture {
	f := &offerFixture{offers: &memOffers{}, templates: newMemTemplates(), candidates: newMemCandidates(), notifier: &fakeNotifier{}}
	f.svc = NewOfferService(f.offers, f.templates, f.candidates, f.notifier, testLogger())
	f.template = &entity.OfferTemplate{
		Name:    "Standard",
		Subject: "Offer for {{name}}",
		Body:    "Hi {{name}},\nWe offer {{salary}} for the {{technology}} team. Start: {{startDate}}",
	}
	require.NoError(t, f.templates.Create(context.Background(), f.template))
	return f
}

func TestCreateOffer(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Technology: "Backend", Status: entity.StatusHired})

	offers, err := f.svc.Create(ctx, c.ID, f.template.ID, map[string]string{"salary": "$90k"})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	o := offers[0]
	assert.Equal(t, "Offer for Dana", o.Subject)
	assert.Equal(t, "Hi Dana,\nWe offer $90k for the Backend team. Start: {{startDate}}", o.Body)
	assert.Equal(t, "dana@example.com", o.SentTo)
	assert.Equal(t, map[string]string{"salary": "$90k"}, o.Placeholders)

	jobs := f.notifier.sentTo("dana@example.com")
	require.Len(t, jobs, 1)
	assert.Equal(t, "Offer for Dana", jobs[0].Subject)
	assert.Contains(t, jobs[0].HTML, "<br>")

	offers, err = f.svc.Create(ctx, c.ID, f.template.ID, nil)
	require.NoError(t, err)
	assert.Len(t, offers, 2)
	assert.NotNil(t, offers[0].Placeholders)
}

func TestCreateOfferRequiresHired(t *testing.T) {
	f := newOfferFixture(t)
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Status: entity.StatusManagerialInterview})

	_, err := f.svc.Create(context.Background(), c.ID, f.template.ID, nil)
	assert.ErrorIs(t, err, ErrNotHired)
	assert.Empty(t, f.offers.list)
}

func TestCreateOfferLookups(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()
	c := f.candidates.put(entity.Candidate{Name: "Dana", Status: entity.StatusHired})

	_, err := f.svc.Create(ctx, "missing", f.template.ID, nil)
	assert.ErrorIs(t, err, ErrCandidateNotFound)
	_, err = f.svc.Create(ctx, c.ID, "missing", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	_, err = f.svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestCreateOfferEmailFailureStillStored(t *testing.T) {
	f := newOfferFixture(t)
	c := f.candidates.put(entity.Candidate{Name: "Dana", Email: "dana@example.com", Status: entity.StatusHired})
	f.notifier.err = errors.New("smtp down")

	offers, err := f.svc.Create(context.Background(), c.ID, f.template.ID, nil)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Empty(t, offers[0].SentTo)
}

func TestTemplateCRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(newMemTemplates())

	b, err := svc.Create(ctx, "B", "Subject B", "Body B")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "A", "Subject A", "Body A")
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)

	subject := "New subject"
	got, err := svc.Update(ctx, b.ID, TemplatePatch{Subject: &subject})
	require.NoError(t, err)
	assert.Equal(t, "New subject", got.Subject)
	assert.Equal(t, "Body B", got.Body)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrTemplateNotFound)
	_, err = svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
