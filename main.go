// Package main provides the minuted CLI entry point.
// minuted turns meeting recordings into summaries, deadlines, and calendar
// events.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/minuted/cmd"
	"github.com/otherjamesbrown/minuted/pkg/buildinfo"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "minuted",
	Short: "Meeting audio summarizer",
	Long: `minuted processes meeting recordings into structured minutes.

Upload or point it at an audio file and it produces a transcript, a summary
(key decisions, action items, next steps), and a list of extracted deadlines,
stored in PostgreSQL. Deadlines can be pushed to Google Calendar.

COMMON WORKFLOWS:
  Run the server:    minuted serve
  Process a file:    minuted process ./standup.mp3
  Browse results:    minuted meetings list  |  minuted meetings show <id>
  Push deadlines:    minuted calendar add <id>
  Store API key:     minuted auth set-key

CONFIGURATION:
  Optional config file at ~/.minuted/config.yaml. Environment variables
  (OPENAI_API_KEY, DATABASE_URL, GOOGLE_CALENDAR_CREDENTIALS, MINUTED_ADDR)
  override file values. Run 'minuted <command> --help' for details.`,
	Version:       buildinfo.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(cmd.NewServeCommand())
	rootCmd.AddCommand(cmd.NewProcessCommand())
	rootCmd.AddCommand(cmd.NewMeetingsCommand())
	rootCmd.AddCommand(cmd.NewCalendarCommand())
	rootCmd.AddCommand(cmd.NewAuthCommand())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
