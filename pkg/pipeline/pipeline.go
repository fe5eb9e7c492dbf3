// Package pipeline orchestrates the meeting processing sequence:
// audio -> transcript -> summary + deadlines -> persisted record.
package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/otherjamesbrown/minuted/pkg/deadlines"
	"github.com/otherjamesbrown/minuted/pkg/logging"
	"github.com/otherjamesbrown/minuted/pkg/store"
)

// TracerName is the name of the tracer for pipeline operations.
const TracerName = "pipeline"

// Stage names, used for metrics labels and span attributes.
const (
	StageTranscribing = "transcribing"
	StageSummarizing  = "summarizing"
	StageExtracting   = "extracting_deadlines"
	StagePersisting   = "persisting"
)

// Transcriber produces transcript text from audio bytes.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Summarizer produces a structured summary from a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// Extractor pulls deadline items out of a transcript. It never fails;
// extraction errors degrade to an empty list inside the adapter.
type Extractor interface {
	Extract(ctx context.Context, transcript string) []deadlines.Item
}

// RecordStore persists completed meeting records.
type RecordStore interface {
	Insert(ctx context.Context, m *store.Meeting) (string, error)
}

// Result is the unified output of one pipeline run.
//
// MeetingID is empty when persistence failed; the computed transcript,
// summary, and deadlines are still returned in that case.
type Result struct {
	MeetingID  string           `json:"meeting_id,omitempty"`
	Transcript string           `json:"transcript"`
	Summary    string           `json:"summary"`
	Deadlines  []deadlines.Item `json:"deadlines"`
}

// Pipeline sequences the processing stages over injected adapters.
type Pipeline struct {
	transcriber Transcriber
	summarizer  Summarizer
	extractor   Extractor
	records     RecordStore
	logger      logging.Logger
	metrics     *Metrics
	tracer      trace.Tracer
}

// New creates a pipeline. Metrics may be nil to disable instrumentation, and
// records may be nil to skip persistence.
func New(transcriber Transcriber, summarizer Summarizer, extractor Extractor, records RecordStore, logger logging.Logger, metrics *Metrics) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		transcriber: transcriber,
		summarizer:  summarizer,
		extractor:   extractor,
		records:     records,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer(TracerName),
	}
}

// Process runs one meeting through the full pipeline.
//
// Transcription and summarization failures are fatal and returned to the
// caller. Extraction failures were already absorbed by the extractor.
// Persistence is best-effort: a store failure is logged and the in-memory
// result returned without a meeting id, so computed work is never discarded.
func (p *Pipeline) Process(ctx context.Context, filename string, audio []byte) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.process",
		trace.WithAttributes(attribute.String("filename", filename)))
	defer span.End()

	log := p.logger.With(logging.F("filename", filename))
	log.Info("pipeline run started", logging.F("size_bytes", len(audio)))

	transcript, err := p.runTranscription(ctx, filename, audio)
	if err != nil {
		p.countRun("failed")
		return nil, err
	}

	// Summarization and extraction both read the same transcript and have no
	// ordering dependency, so they run concurrently. Both must finish before
	// persistence.
	var summary string
	var items []deadlines.Item

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var serr error
		summary, serr = p.runSummarization(gctx, transcript)
		return serr
	})
	g.Go(func() error {
		items = p.runExtraction(gctx, transcript)
		return nil
	})
	if err := g.Wait(); err != nil {
		p.countRun("failed")
		return nil, err
	}

	result := &Result{
		Transcript: transcript,
		Summary:    summary,
		Deadlines:  items,
	}

	result.MeetingID = p.persist(ctx, filename, result)

	log.Info("pipeline run completed",
		logging.F("meeting_id", result.MeetingID),
		logging.F("deadline_count", len(result.Deadlines)))
	p.countRun("succeeded")
	return result, nil
}

func (p *Pipeline) runTranscription(ctx context.Context, filename string, audio []byte) (string, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.stage.transcribing")
	defer span.End()

	start := time.Now()
	transcript, err := p.transcriber.Transcribe(ctx, audio, filename)
	p.observeStage(StageTranscribing, start)

	if err != nil {
		p.countFailure(StageTranscribing)
		p.logger.Error("transcription stage failed", logging.Err(err))
		return "", err
	}
	return transcript, nil
}

func (p *Pipeline) runSummarization(ctx context.Context, transcript string) (string, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.stage.summarizing")
	defer span.End()

	start := time.Now()
	summary, err := p.summarizer.Summarize(ctx, transcript)
	p.observeStage(StageSummarizing, start)

	if err != nil {
		p.countFailure(StageSummarizing)
		p.logger.Error("summarization stage failed", logging.Err(err))
		return "", err
	}
	return summary, nil
}

func (p *Pipeline) runExtraction(ctx context.Context, transcript string) []deadlines.Item {
	ctx, span := p.tracer.Start(ctx, "pipeline.stage.extracting")
	defer span.End()

	start := time.Now()
	items := p.extractor.Extract(ctx, transcript)
	p.observeStage(StageExtracting, start)

	if items == nil {
		items = []deadlines.Item{}
	}
	if p.metrics != nil {
		p.metrics.DeadlinesExtracted.Observe(float64(len(items)))
	}
	return items
}

// persist writes the record and returns its id, or "" when the write failed
// or no store is configured.
func (p *Pipeline) persist(ctx context.Context, filename string, result *Result) string {
	if p.records == nil {
		return ""
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.stage.persisting")
	defer span.End()

	start := time.Now()
	id, err := p.records.Insert(ctx, &store.Meeting{
		Filename:   filename,
		Transcript: result.Transcript,
		Summary:    result.Summary,
		Deadlines:  result.Deadlines,
	})
	p.observeStage(StagePersisting, start)

	if err != nil {
		p.countFailure(StagePersisting)
		p.logger.Warn("persistence failed, returning in-memory result", logging.Err(err))
		return ""
	}
	return id
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	if p.metrics != nil {
		p.metrics.StageSeconds.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}

func (p *Pipeline) countFailure(stage string) {
	if p.metrics != nil {
		p.metrics.StageFailuresTotal.WithLabelValues(stage).Inc()
	}
}

func (p *Pipeline) countRun(status string) {
	if p.metrics != nil {
		p.metrics.RunsTotal.WithLabelValues(status).Inc()
	}
}
