package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/minuted/pkg/store"
)

// Meetings command flags
var (
	meetingsLimit  int
	meetingsSkip   int
	meetingsOutput string
)

// NewMeetingsCommand creates the root meetings command with all subcommands.
func NewMeetingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meetings",
		Short: "Browse and manage processed meetings",
		Long: `Browse and manage processed meetings.

Connects directly to the PostgreSQL database. Requires DATABASE_URL or DB_*
environment variables to be set.

Examples:
  # List recent meetings
  minuted meetings list

  # Show one meeting in full
  minuted meetings show 6f1b9dfb-0b1a-4f57-a7a9-2a9f9a3cbb0e

  # Search transcripts and summaries
  minuted meetings search "budget review"

  # Corpus statistics
  minuted meetings stats`,
		Aliases: []string{"meeting"},
	}

	cmd.PersistentFlags().StringVarP(&meetingsOutput, "output", "o", "text", "Output format: text, json")

	cmd.AddCommand(newMeetingsListCommand())
	cmd.AddCommand(newMeetingsShowCommand())
	cmd.AddCommand(newMeetingsSearchCommand())
	cmd.AddCommand(newMeetingsDeleteCommand())
	cmd.AddCommand(newMeetingsStatsCommand())

	return cmd
}

func newMeetingsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processed meetings, newest first",
		Example: `  minuted meetings list
  minuted meetings list --limit 10 --skip 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				meetings, err := s.List(ctx, meetingsLimit, meetingsSkip)
				if err != nil {
					return err
				}
				if meetingsOutput == "json" {
					return outputJSON(meetings)
				}
				printMeetingTable(meetings)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&meetingsLimit, "limit", 0, "Maximum number of meetings to return")
	cmd.Flags().IntVar(&meetingsSkip, "skip", 0, "Number of meetings to skip")

	return cmd
}

func newMeetingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "show <meeting-id>",
		Short:   "Show one meeting in full",
		Example: `  minuted meetings show 6f1b9dfb-0b1a-4f57-a7a9-2a9f9a3cbb0e`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				meeting, err := s.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if meetingsOutput == "json" {
					return outputJSON(meeting)
				}

				fmt.Printf("ID:        %s\n", meeting.ID)
				fmt.Printf("File:      %s\n", meeting.Filename)
				fmt.Printf("Processed: %s\n\n", meeting.CreatedAt.Format("2006-01-02 15:04:05"))
				fmt.Println(meeting.Summary)
				fmt.Printf("\nDeadlines (%d):\n", len(meeting.Deadlines))
				printDeadlines(meeting.Deadlines)
				fmt.Printf("\nTranscript:\n%s\n", meeting.Transcript)
				return nil
			})
		},
	}
}

func newMeetingsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search transcripts and summaries",
		Long: `Search transcripts and summaries.

Matches the query case-insensitively against transcripts, summaries, and
filenames. Returns at most 20 results.`,
		Example: `  minuted meetings search "budget review"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				meetings, err := s.Search(ctx, args[0])
				if err != nil {
					return err
				}
				if meetingsOutput == "json" {
					return outputJSON(meetings)
				}
				printMeetingTable(meetings)
				return nil
			})
		},
	}
}

func newMeetingsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <meeting-id>",
		Short:   "Delete a meeting record",
		Example: `  minuted meetings delete 6f1b9dfb-0b1a-4f57-a7a9-2a9f9a3cbb0e`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				if err := s.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("Deleted meeting %s\n", args[0])
				return nil
			})
		},
	}
}

func newMeetingsStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Short:   "Show corpus statistics",
		Example: `  minuted meetings stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				stats, err := s.Stats(ctx)
				if err != nil {
					return err
				}
				if meetingsOutput == "json" {
					return outputJSON(stats)
				}

				fmt.Printf("Meetings:  %d\n", stats.TotalMeetings)
				fmt.Printf("Deadlines: %d\n", stats.TotalDeadlines)
				fmt.Printf("Average:   %.1f deadlines per meeting\n", stats.AverageDeadlinesPerMeeting)
				return nil
			})
		},
	}
}

// withStore connects to the database, runs fn against the store, and closes
// the pool.
func withStore(ctx context.Context, fn func(context.Context, *store.Store) error) error {
	pool, err := connectDatabase(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, store.New(pool))
}
