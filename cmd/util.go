// Package cmd provides CLI commands for the minuted tool.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otherjamesbrown/minuted/config"
	"github.com/otherjamesbrown/minuted/credentials"
	"github.com/otherjamesbrown/minuted/pkg/ai"
	"github.com/otherjamesbrown/minuted/pkg/calendar"
	"github.com/otherjamesbrown/minuted/pkg/db"
	"github.com/otherjamesbrown/minuted/pkg/deadlines"
	"github.com/otherjamesbrown/minuted/pkg/logging"
	"github.com/otherjamesbrown/minuted/pkg/pipeline"
	"github.com/otherjamesbrown/minuted/pkg/store"
	"github.com/otherjamesbrown/minuted/pkg/summarize"
	"github.com/otherjamesbrown/minuted/pkg/transcribe"
)

// loadConfig loads configuration and fills in the API key from the system
// keyring when the environment did not provide one.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.OpenAI.APIKey == "" {
		key, err := credentials.LoadAPIKey()
		if err == nil {
			cfg.OpenAI.APIKey = key
		}
	}

	return cfg, nil
}

// newCommandLogger builds a logger for CLI commands. Command output goes to
// stdout, so logs go to stderr.
func newCommandLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:       logging.Level(cfg.LogLevel),
		ServiceName: "minuted",
		JSONFormat:  cfg.LogJSON,
		Output:      os.Stderr,
	})
}

// connectDatabase connects to PostgreSQL using the environment configuration
// and makes sure the schema exists.
func connectDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	dbCfg := db.ConfigFromEnv()
	pool, err := db.Connect(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	return pool, nil
}

// buildPipeline assembles the processing pipeline from configuration. The
// records store may be nil; the pipeline then returns in-memory results only.
func buildPipeline(cfg *config.Config, records pipeline.RecordStore, logger logging.Logger, metrics *pipeline.Metrics) *pipeline.Pipeline {
	client := ai.NewClient(ai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	})

	return pipeline.New(
		transcribe.NewAdapter(client, cfg.OpenAI.TranscribeModel, logger),
		summarize.NewAdapter(client, cfg.OpenAI.SummaryModel),
		deadlines.NewExtractor(client, cfg.OpenAI.ExtractionModel, logger),
		records,
		logger,
		metrics,
	)
}

// buildScheduler creates the calendar scheduler, or nil when calendar
// credentials are not configured.
func buildScheduler(ctx context.Context, cfg *config.Config, logger logging.Logger) (*calendar.Scheduler, error) {
	if !cfg.CalendarConfigured() {
		return nil, nil
	}
	client, err := calendar.NewGoogleClient(ctx, cfg.Calendar.CredentialsFile, cfg.Calendar.CalendarID)
	if err != nil {
		return nil, fmt.Errorf("creating calendar client: %w", err)
	}
	return calendar.NewScheduler(client, logger), nil
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMeetingTable formats a list of meetings for terminal display.
func printMeetingTable(meetings []store.Meeting) {
	if len(meetings) == 0 {
		fmt.Println("No meetings found.")
		return
	}

	fmt.Printf("%-38s %-24s %-9s %-17s %s\n", "ID", "FILE", "DEADLINES", "PROCESSED", "SUMMARY")
	for _, m := range meetings {
		fmt.Printf("%-38s %-24s %-9d %-17s %s\n",
			m.ID,
			truncate(m.Filename, 24),
			len(m.Deadlines),
			m.CreatedAt.Format("2006-01-02 15:04"),
			truncate(firstLine(m.Summary), 40))
	}
}

// printResult formats a pipeline result for terminal display.
func printResult(result *pipeline.Result) {
	if result.MeetingID != "" {
		fmt.Printf("Meeting ID: %s\n\n", result.MeetingID)
	}
	fmt.Println(result.Summary)

	fmt.Printf("\nDeadlines (%d):\n", len(result.Deadlines))
	printDeadlines(result.Deadlines)
}

func printDeadlines(items []deadlines.Item) {
	if len(items) == 0 {
		fmt.Println("  none")
		return
	}
	for _, item := range items {
		line := fmt.Sprintf("  %s - %s", item.Date, item.Title)
		if item.Description != "" {
			line += fmt.Sprintf(" (%s)", item.Description)
		}
		fmt.Println(line)
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// firstLine returns the first non-empty line of s, for compact listings.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
