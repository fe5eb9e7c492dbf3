package deadlines

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/otherjamesbrown/minuted/pkg/ai"
	"github.com/otherjamesbrown/minuted/pkg/logging"
)

// DefaultModel is the generation model used for extraction when none is
// configured. It is deliberately separate from the summarization model.
const DefaultModel = "gpt-4"

// DefaultTemperature keeps extraction output close to deterministic.
const DefaultTemperature float32 = 0.3

const systemPrompt = "You are an expert at extracting deadlines and important dates " +
	"from meeting transcripts. Always respond with ONLY valid JSON, no other text or markdown."

const extractionPrompt = `Analyze the following meeting transcript and extract all deadlines,
tasks with due dates, and important dates mentioned.

Return ONLY a valid JSON array, nothing else. No markdown, no extra text.

For each deadline found, provide:
1. Task/Deadline title
2. Due date (YYYY-MM-DD if possible, or natural language)
3. Brief description/context

Example format:
[
    {
        "title": "Submit project proposal",
        "date": "2025-01-20",
        "description": "Project proposal for client meeting"
    }
]

If no deadlines are found, return: []

Meeting Transcript:
%s`

// ChatClient is the provider call the extractor depends on.
// Satisfied by *ai.Client.
type ChatClient interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
}

// Extractor pulls deadline items out of transcript text.
type Extractor struct {
	client      ChatClient
	model       string
	temperature float32
	logger      logging.Logger
}

// NewExtractor creates a deadline extractor. An empty model selects DefaultModel.
func NewExtractor(client ChatClient, model string, logger logging.Logger) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{client: client, model: model, temperature: DefaultTemperature, logger: logger}
}

// Extract returns the deadlines mentioned in the transcript.
//
// Extraction is an enhancement, not a pipeline-blocking dependency: any
// provider or parse failure degrades to an empty list instead of propagating.
// The raw offending text is logged so operators can see what the model sent.
// An empty slice with no log entry means the model genuinely found nothing.
func (e *Extractor) Extract(ctx context.Context, transcript string) []Item {
	temp := e.temperature
	content, err := e.client.Complete(ctx, ai.CompletionRequest{
		Model:       e.model,
		System:      systemPrompt,
		Prompt:      fmt.Sprintf(extractionPrompt, transcript),
		Temperature: &temp,
	})
	if err != nil {
		e.logger.Warn("deadline extraction provider call failed", logging.Err(err))
		return []Item{}
	}

	cleaned := StripCodeFence(content)

	var items []Item
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		e.logger.Warn("deadline extraction returned unparseable JSON",
			logging.Err(err),
			logging.F("raw_response", content))
		return []Item{}
	}

	if items == nil {
		items = []Item{}
	}
	return items
}
