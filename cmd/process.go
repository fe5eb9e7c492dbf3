package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/minuted/pkg/pipeline"
	"github.com/otherjamesbrown/minuted/pkg/store"
)

var (
	processNoSave bool
	processOutput string
)

// NewProcessCommand creates the 'process' command.
func NewProcessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Process a meeting recording",
		Long: `Process a meeting recording end to end.

Transcribes the audio, generates a structured summary (key decisions, action
items, next steps), extracts deadlines, and saves the result to the database.

Requires OPENAI_API_KEY (or a key stored via 'minuted auth set-key').
Persistence requires a PostgreSQL connection; use --no-save to skip it.

Flags:
  --no-save   Do not persist the result to the database
  --output    Output format: text, json (default: text)

Examples:
  # Process and save a recording
  minuted process ./standup.mp3

  # Process without touching the database
  minuted process ./standup.mp3 --no-save

  # Structured output for scripting
  minuted process ./standup.mp3 --output json`,
		Example: `  minuted process ./standup.mp3
  minuted process ./standup.mp3 --no-save
  minuted process ./standup.mp3 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), args[0])
		},
	}

	cmd.Flags().BoolVar(&processNoSave, "no-save", false, "Do not persist the result to the database")
	cmd.Flags().StringVarP(&processOutput, "output", "o", "text", "Output format: text, json")

	return cmd
}

func runProcess(ctx context.Context, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateProviders(); err != nil {
		return err
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading audio file: %w", err)
	}
	if len(audio) == 0 {
		return fmt.Errorf("audio file %s is empty", path)
	}

	logger := newCommandLogger(cfg)

	var records pipeline.RecordStore
	if !processNoSave {
		pool, err := connectDatabase(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		records = store.New(pool)
	}

	proc := buildPipeline(cfg, records, logger, nil)

	result, err := proc.Process(ctx, filepath.Base(path), audio)
	if err != nil {
		return err
	}

	if processOutput == "json" {
		return outputJSON(result)
	}
	printResult(result)
	return nil
}
