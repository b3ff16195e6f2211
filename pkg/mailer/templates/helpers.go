package templates

import (
	"time"

	"github.com/nexcruit/ats-backend/config"
)

// WhenLayout is how interview times are printed in every message.
const WhenLayout = "Jan 2, 2006 at 03:04 PM"

// DateLayout is used for letter dates.
const DateLayout = "January 2, 2006"

// Option pattern
type Option func(*EmailData)

func WithActionURL(url string) Option { return func(d *EmailData) { d.ActionURL = url } }
func WithCode(code string) Option     { return func(d *EmailData) { d.Code = code } }

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) {
		d.ExpiresAtText = time.Now().Add(dur).UTC().Format("02 January 2006, 15:04 MST")
	}
}

func WithInterview(candidateName, interviewer, stage, meetLink string, at time.Time) Option {
	return func(d *EmailData) {
		d.CandidateName = candidateName
		d.InterviewerEmail = interviewer
		d.PipelineStage = stage
		d.MeetLink = meetLink
		d.When = at.UTC().Format(WhenLayout) + " UTC"
	}
}

// LetterFields carries the structured parts of an offer letter.
type LetterFields struct {
	Position           string
	Technology         string
	Salary             string
	StartingDate       *time.Time
	ProbationDate      *time.Time
	AcceptanceDeadline *time.Time
}

func WithLetter(f LetterFields) Option {
	return func(d *EmailData) {
		d.Position = f.Position
		d.Technology = f.Technology
		d.Salary = f.Salary
		d.StartingDate = formatDate(f.StartingDate)
		d.ProbationDate = formatDate(f.ProbationDate)
		d.AcceptanceDeadline = formatDate(f.AcceptanceDeadline)
	}
}

func WithRefEmail(ref string) Option { return func(d *EmailData) { d.RefEmail = ref } }

func WithCandidate(name string) Option { return func(d *EmailData) { d.CandidateName = name } }

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// NewBaseEmailData fills the shared fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ string, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          recipient,
		RecipientEmail: recipient,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewData is NewBaseEmailData flattened for EmailJob.Data.
func NewData(cfg *config.Config, typ string, name, recipient string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, typ, name, recipient, opts...))
}
