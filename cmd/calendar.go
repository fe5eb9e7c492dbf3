package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/minuted/pkg/store"
)

// NewCalendarCommand creates the root calendar command.
func NewCalendarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Push meeting deadlines to Google Calendar",
		Long: `Push meeting deadlines to Google Calendar.

Requires GOOGLE_CALENDAR_CREDENTIALS to point at a service account key file.
Set GOOGLE_CALENDAR_ID to target a calendar other than the account's primary.

Each deadline becomes a one hour event with an email reminder one day before
and a popup reminder one hour before. Deadlines whose dates cannot be parsed
are skipped and reported.

Examples:
  # Add all deadlines from a processed meeting
  minuted calendar add 6f1b9dfb-0b1a-4f57-a7a9-2a9f9a3cbb0e`,
	}

	cmd.AddCommand(newCalendarAddCommand())

	return cmd
}

func newCalendarAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "add <meeting-id>",
		Short:   "Add a meeting's deadlines to the calendar",
		Example: `  minuted calendar add 6f1b9dfb-0b1a-4f57-a7a9-2a9f9a3cbb0e`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendarAdd(cmd.Context(), args[0])
		},
	}
}

func runCalendarAdd(ctx context.Context, meetingID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.CalendarConfigured() {
		return fmt.Errorf("calendar is not configured; set %s to a service account key file", "GOOGLE_CALENDAR_CREDENTIALS")
	}

	logger := newCommandLogger(cfg)

	scheduler, err := buildScheduler(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var meeting *store.Meeting
	if err := withStore(ctx, func(ctx context.Context, s *store.Store) error {
		meeting, err = s.Get(ctx, meetingID)
		return err
	}); err != nil {
		return err
	}

	if len(meeting.Deadlines) == 0 {
		fmt.Println("Meeting has no deadlines.")
		return nil
	}

	outcome, err := scheduler.Schedule(ctx, meeting.Deadlines)
	if err != nil {
		return err
	}

	for _, added := range outcome.Added {
		fmt.Printf("  added: %s (%s)\n", added.Title, added.EventID)
	}
	for _, failed := range outcome.Failed {
		fmt.Printf("  failed: %s\n", failed)
	}
	fmt.Printf("Added %d event(s), %d failed.\n", len(outcome.Added), len(outcome.Failed))
	return nil
}
