package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	// Basic info
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	// Company info
	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`
	AppName        string `json:"AppName"`
	LogoURL        string `json:"LogoURL"`
	SupportURL     string `json:"SupportURL"`

	// Account actions
	ActionURL     string `json:"ActionURL"`
	Code          string `json:"Code"`
	ExpiresAtText string `json:"ExpiresAtText"`

	// Interviews
	CandidateName    string `json:"CandidateName"`
	InterviewerEmail string `json:"InterviewerEmail"`
	PipelineStage    string `json:"PipelineStage"`
	When             string `json:"When"`
	MeetLink         string `json:"MeetLink"`

	// Letters
	Position           string `json:"Position"`
	Technology         string `json:"Technology"`
	Salary             string `json:"Salary"`
	StartingDate       string `json:"StartingDate"`
	ProbationDate      string `json:"ProbationDate"`
	AcceptanceDeadline string `json:"AcceptanceDeadline"`

	// Background checks
	RefEmail string `json:"RefEmail"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

const (
	VerifyEmail        = "verify_email"
	ResetPassword      = "reset_password"
	EmailChange        = "email_change"
	InterviewScheduled = "interview_scheduled"
	InterviewReminder  = "interview_reminder"
	OfferLetter        = "offer_letter"
	RejectionLetter    = "rejection_letter"
	BackgroundCheck    = "background_check"
)

// Names lists every template shipped in FS.
var Names = []string{
	VerifyEmail, ResetPassword, EmailChange,
	InterviewScheduled, InterviewReminder,
	OfferLetter, RejectionLetter, BackgroundCheck,
}

var (
	parseOnce sync.Once
	htmlSet   *htmpl.Template
	textSet   *texttpl.Template
	parseErr  error
)

// parse compiles every embedded template once. Text sets hold subjects and
// plain bodies; the HTML set holds the html/template-escaped bodies.
func parse() error {
	parseOnce.Do(func() {
		textSet, parseErr = texttpl.New("text").Funcs(textFuncMap).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parse text templates: %w", parseErr)
			return
		}
		htmlSet, parseErr = htmpl.New("html").Funcs(htmlFuncMap).ParseFS(FS, "*.html.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parse html templates: %w", parseErr)
		}
	})
	return parseErr
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(set executor, filename string, data any) (string, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, filename, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render produces the subject, text and html of template name from
// <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
func Render(name string, data any) (subject, text, html string, err error) {
	if err = parse(); err != nil {
		return "", "", "", err
	}
	if subject, err = execute(textSet, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(textSet, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(htmlSet, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}
