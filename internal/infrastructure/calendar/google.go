package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/internal/application"
)

var ErrNoMeetLink = errors.New("calendar event has no meet link")

// GoogleCalendar books events with a Google Meet conference attached.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
	timeout    time.Duration
}

// NewGoogleCalendar authenticates with the OAuth refresh token when one is configured,
// otherwise with the credentials file.
func NewGoogleCalendar(ctx context.Context, cfg *config.Config) (*GoogleCalendar, error) {
	var opt option.ClientOption
	switch {
	case cfg.GoogleRefreshToken != "":
		conf := &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gcal.CalendarEventsScope},
		}
		opt = option.WithTokenSource(conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.GoogleRefreshToken}))
	case cfg.GoogleCalendarCredsPath != "":
		opt = option.WithCredentialsFile(cfg.GoogleCalendarCredsPath)
	default:
		return nil, errors.New("google calendar: no refresh token or credentials configured")
	}
	svc, err := gcal.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("google calendar: %w", err)
	}
	return &GoogleCalendar{svc: svc, calendarID: cfg.GoogleCalendarID, timeout: 15 * time.Second}, nil
}

func (g *GoogleCalendar) Book(ctx context.Context, req application.MeetingRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	attendees := make([]*gcal.EventAttendee, 0, len(req.Attendees))
	for _, email := range req.Attendees {
		if email != "" {
			attendees = append(attendees, &gcal.EventAttendee{Email: email})
		}
	}
	event := &gcal.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       &gcal.EventDateTime{DateTime: req.Start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:         &gcal.EventDateTime{DateTime: req.End.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		Attendees:   attendees,
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if link := meetLink(created); link != "" {
		return link, nil
	}
	return "", ErrNoMeetLink
}

func meetLink(ev *gcal.Event) string {
	if ev.HangoutLink != "" {
		return ev.HangoutLink
	}
	if ev.ConferenceData == nil {
		return ""
	}
	for _, ep := range ev.ConferenceData.EntryPoints {
		if ep.EntryPointType == "video" && ep.Uri != "" {
			return ep.Uri
		}
	}
	return ""
}
