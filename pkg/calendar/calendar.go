// Package calendar submits extracted deadlines to an external calendar as
// reminder events.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/otherjamesbrown/minuted/pkg/deadlines"
	pferrors "github.com/otherjamesbrown/minuted/pkg/errors"
	"github.com/otherjamesbrown/minuted/pkg/logging"
)

// Event reminder offsets and duration. Every deadline event gets the same
// treatment: one hour long, a day-ahead email and an hour-ahead popup.
const (
	EventDuration        = time.Hour
	EmailReminderMinutes = 24 * 60
	PopupReminderMinutes = 60
)

// Event is a calendar event to be created.
type Event struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// EventCreator is the external calendar call the scheduler depends on.
// Satisfied by *GoogleClient.
type EventCreator interface {
	CreateEvent(ctx context.Context, ev Event) (string, error)
}

// AddedEvent records one successful submission.
type AddedEvent struct {
	Title   string `json:"title"`
	EventID string `json:"event_id"`
}

// Outcome collects per-item results for one batch. It is never persisted.
type Outcome struct {
	Added  []AddedEvent `json:"added"`
	Failed []string     `json:"failed"`
}

// Scheduler turns deadline items into calendar events.
type Scheduler struct {
	creator EventCreator
	logger  logging.Logger
	now     func() time.Time
}

// NewScheduler creates a scheduler. The creator may be nil when no calendar
// service is configured; Schedule then fails with ErrCalendarAuth.
func NewScheduler(creator EventCreator, logger logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scheduler{creator: creator, logger: logger, now: time.Now}
}

// Schedule submits one event per deadline item, independently.
//
// An unparseable date fails the item without a provider call; a provider
// rejection fails the item; neither aborts the batch. The only batch-level
// failure is a missing or unauthenticated calendar service, checked once
// before the loop.
func (s *Scheduler) Schedule(ctx context.Context, items []deadlines.Item) (*Outcome, error) {
	if s.creator == nil {
		return nil, fmt.Errorf("%w: no calendar credentials configured", pferrors.ErrCalendarAuth)
	}

	outcome := &Outcome{Added: []AddedEvent{}, Failed: []string{}}
	now := s.now().UTC()

	for _, item := range items {
		start, ok := deadlines.NormalizeDate(item.Date, now)
		if !ok {
			s.logger.Warn("skipping deadline with unparseable date",
				logging.F("title", item.Title),
				logging.F("date", item.Date))
			outcome.Failed = append(outcome.Failed, item.Title)
			continue
		}

		eventID, err := s.creator.CreateEvent(ctx, Event{
			Title:       item.Title,
			Description: item.Description,
			Start:       start,
			End:         start.Add(EventDuration),
		})
		if err != nil {
			s.logger.Warn("calendar event creation failed",
				logging.F("title", item.Title),
				logging.Err(err))
			outcome.Failed = append(outcome.Failed, item.Title)
			continue
		}

		outcome.Added = append(outcome.Added, AddedEvent{Title: item.Title, EventID: eventID})
	}

	return outcome, nil
}
