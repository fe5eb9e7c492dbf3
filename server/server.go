// Package server provides the HTTP front-ends for minuted: a JSON API and a
// server-rendered upload/browse page.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/otherjamesbrown/minuted/pkg/buildinfo"
	"github.com/otherjamesbrown/minuted/pkg/calendar"
	"github.com/otherjamesbrown/minuted/pkg/db"
	"github.com/otherjamesbrown/minuted/pkg/deadlines"
	"github.com/otherjamesbrown/minuted/pkg/logging"
	"github.com/otherjamesbrown/minuted/pkg/pipeline"
	"github.com/otherjamesbrown/minuted/pkg/store"
)

//go:embed web/*.html
var templateFS embed.FS

// MaxUploadBytes caps uploaded audio size.
const MaxUploadBytes = 100 << 20 // 100 MiB

// Processor runs one meeting through the processing pipeline.
type Processor interface {
	Process(ctx context.Context, filename string, audio []byte) (*pipeline.Result, error)
}

// DeadlineScheduler pushes deadline items into the external calendar.
type DeadlineScheduler interface {
	Schedule(ctx context.Context, items []deadlines.Item) (*calendar.Outcome, error)
}

// MeetingStore exposes the persistence operations the handlers need.
type MeetingStore interface {
	List(ctx context.Context, limit, skip int) ([]store.Meeting, error)
	Get(ctx context.Context, id string) (*store.Meeting, error)
	Search(ctx context.Context, query string) ([]store.Meeting, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*store.Statistics, error)
}

// HealthChecker reports database health. Optional.
type HealthChecker func(ctx context.Context) *db.HealthStatus

// Server wires the HTTP routes to the injected collaborators.
type Server struct {
	processor Processor
	scheduler DeadlineScheduler
	meetings  MeetingStore
	health    HealthChecker
	logger    logging.Logger
}

// New creates a Server. scheduler and health may be nil when the
// corresponding features are not configured.
func New(processor Processor, scheduler DeadlineScheduler, meetings MeetingStore, health HealthChecker, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		processor: processor,
		scheduler: scheduler,
		meetings:  meetings,
		health:    health,
		logger:    logger,
	}
}

// Engine builds the gin engine with all routes registered.
func (s *Server) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = MaxUploadBytes

	engine.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "web/*.html")))

	api := engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/upload", s.handleUpload)
		api.POST("/add-to-calendar", s.handleAddToCalendar)

		api.GET("/meetings", s.handleListMeetings)
		api.GET("/meetings/search", s.handleSearchMeetings)
		api.GET("/meetings/:id", s.handleGetMeeting)
		api.DELETE("/meetings/:id", s.handleDeleteMeeting)
		api.GET("/stats", s.handleStats)
	}

	engine.GET("/", s.handleIndex)
	engine.POST("/upload", s.handleUploadPage)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/version", gin.WrapF(buildinfo.Handler("minuted")))

	return engine
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", logging.F("addr", addr))
	return s.Engine().Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if s.health != nil {
		status := s.health(c.Request.Context())
		resp["database"] = gin.H{
			"healthy":    status.Healthy,
			"latency_ms": status.Latency.Milliseconds(),
		}
		if status.Error != nil {
			resp["database"].(gin.H)["error"] = status.Error.Error()
		}
	}
	c.JSON(http.StatusOK, resp)
}
