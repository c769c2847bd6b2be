package notify

import (
	"context"
	"fmt"

	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/vaidyahealth/vaidya-platform/pkg/logging"
)

// CalendarEvent is an appointment block to place on the shared calendar.
type CalendarEvent struct {
	Summary     string
	Description string
	Start       string // RFC 3339 with UTC offset, e.g. 2025-09-01T10:00:00+05:30
	End         string
	Timezone    string
}

// CalendarService creates calendar events and returns a shareable link.
type CalendarService interface {
	CreateEvent(ctx context.Context, event CalendarEvent) (string, error)
}

// GoogleCalendar creates events on a Google calendar via a service account.
type GoogleCalendar struct {
	svc        *calendarapi.Service
	calendarID string
	logger     *logging.Logger
}

// GoogleCalendarConfig holds calendar credentials and target.
type GoogleCalendarConfig struct {
	CredentialsFile string
	CalendarID      string
}

// NewGoogleCalendar creates a calendar client.
func NewGoogleCalendar(ctx context.Context, cfg GoogleCalendarConfig, logger *logging.Logger) (*GoogleCalendar, error) {
	if logger == nil {
		logger = logging.Default()
	}
	svc, err := calendarapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("notify: create calendar service: %w", err)
	}
	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendar{svc: svc, calendarID: calendarID, logger: logger}, nil
}

// CreateEvent inserts the event with the fixed reminder policy: email a
// day before, popup thirty minutes before. Attendee updates are sent.
func (g *GoogleCalendar) CreateEvent(ctx context.Context, event CalendarEvent) (string, error) {
	body := &calendarapi.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &calendarapi.EventDateTime{DateTime: event.Start, TimeZone: event.Timezone},
		End:         &calendarapi.EventDateTime{DateTime: event.End, TimeZone: event.Timezone},
		Visibility:  "public",
		Reminders: &calendarapi.EventReminders{
			UseDefault: false,
			Overrides: []*calendarapi.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := g.svc.Events.Insert(g.calendarID, body).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		g.logger.Error("calendar insert failed", "error", err, "summary", event.Summary)
		return "", fmt.Errorf("notify: calendar insert: %w", err)
	}
	g.logger.Info("calendar event created", "summary", event.Summary, "link", created.HtmlLink)
	return created.HtmlLink, nil
}

// StubCalendar records events without creating them.
type StubCalendar struct {
	logger *logging.Logger

	// Events records every created event for assertions.
	Events []CalendarEvent
	Link   string
	Err    error
}

// NewStubCalendar creates a stub calendar service.
func NewStubCalendar(logger *logging.Logger) *StubCalendar {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubCalendar{logger: logger, Link: "https://calendar.example/event"}
}

// CreateEvent records the event and returns the configured link.
func (s *StubCalendar) CreateEvent(ctx context.Context, event CalendarEvent) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.Events = append(s.Events, event)
	s.logger.Info("stub calendar event", "summary", event.Summary)
	return s.Link, nil
}
