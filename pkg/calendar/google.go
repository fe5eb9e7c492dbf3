package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	pferrors "github.com/otherjamesbrown/minuted/pkg/errors"
)

// DefaultCalendarID targets the authenticated account's primary calendar.
const DefaultCalendarID = "primary"

// GoogleClient creates events in Google Calendar.
type GoogleClient struct {
	service    *gcal.Service
	calendarID string
}

// NewGoogleClient builds a calendar client from a service-account credentials
// file. A missing or invalid credentials file surfaces as ErrCalendarAuth.
func NewGoogleClient(ctx context.Context, credentialsFile, calendarID string) (*GoogleClient, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("%w: no credentials file configured", pferrors.ErrCalendarAuth)
	}
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	service, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarEventsScope))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pferrors.ErrCalendarAuth, err)
	}

	return &GoogleClient{service: service, calendarID: calendarID}, nil
}

// CreateEvent inserts a one-off event with the fixed reminder offsets and
// returns the provider's event id.
func (c *GoogleClient) CreateEvent(ctx context.Context, ev Event) (string, error) {
	event := &gcal.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: EmailReminderMinutes},
				{Method: "popup", Minutes: PopupReminderMinutes},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := c.service.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	return created.Id, nil
}
