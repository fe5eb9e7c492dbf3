package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/minuted/pkg/db"
	"github.com/otherjamesbrown/minuted/pkg/logging"
	"github.com/otherjamesbrown/minuted/pkg/pipeline"
	"github.com/otherjamesbrown/minuted/pkg/store"
	"github.com/otherjamesbrown/minuted/server"
)

var serveAddr string

// NewServeCommand creates the 'serve' command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the minuted HTTP server",
		Long: `Run the minuted HTTP server.

Serves the JSON API under /api, the upload/browse web page at /, and
Prometheus metrics at /metrics.

Requires OPENAI_API_KEY (or a key stored via 'minuted auth set-key') and a
PostgreSQL connection (DATABASE_URL or DB_* environment variables).

Google Calendar integration is enabled when GOOGLE_CALENDAR_CREDENTIALS points
at a service account key file; without it the add-to-calendar endpoint reports
that the feature is not configured.

Examples:
  # Serve on the default address (:8080)
  minuted serve

  # Serve on a custom address
  minuted serve --addr :9090`,
		Example: `  minuted serve
  minuted serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default from config)")

	return cmd
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateProviders(); err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}

	logger := newCommandLogger(cfg)

	pool, err := connectDatabase(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	meetings := store.New(pool)
	metrics := pipeline.NewMetrics(prometheus.DefaultRegisterer)
	proc := buildPipeline(cfg, meetings, logger, metrics)

	scheduler, err := buildScheduler(ctx, cfg, logger)
	if err != nil {
		logger.Warn("calendar integration disabled", logging.Err(err))
		scheduler = nil
	}

	health := func(ctx context.Context) *db.HealthStatus {
		return db.Check(ctx, pool)
	}

	var srv *server.Server
	if scheduler != nil {
		srv = server.New(proc, scheduler, meetings, health, logger)
	} else {
		srv = server.New(proc, nil, meetings, health, logger)
	}

	if err := srv.Run(cfg.ListenAddr); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
