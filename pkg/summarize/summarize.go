// Package summarize adapts the text-generation provider to produce structured
// meeting summaries.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/otherjamesbrown/minuted/pkg/ai"
	pferrors "github.com/otherjamesbrown/minuted/pkg/errors"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// promptTemplate asks for the three summary sections. The sections are a
// prompt convention, not a schema: the output stays free-form prose.
const promptTemplate = `Summarize the following meeting transcript into:
1. Key decisions
2. Action items (with responsible persons if mentioned)
3. Next steps

Transcript:
%s`

// ChatClient is the provider call the adapter depends on.
// Satisfied by *ai.Client.
type ChatClient interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
}

// Adapter produces a meeting summary from transcript text.
type Adapter struct {
	client ChatClient
	model  string
}

// NewAdapter creates a summarization adapter. An empty model selects DefaultModel.
func NewAdapter(client ChatClient, model string) *Adapter {
	if model == "" {
		model = DefaultModel
	}
	return &Adapter{client: client, model: model}
}

// Summarize generates the three-section summary for the transcript.
// Empty provider output after trimming is a failure.
func (a *Adapter) Summarize(ctx context.Context, transcript string) (string, error) {
	content, err := a.client.Complete(ctx, ai.CompletionRequest{
		Model:  a.model,
		Prompt: fmt.Sprintf(promptTemplate, transcript),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", pferrors.ErrSummarization, err)
	}

	summary := strings.TrimSpace(content)
	if summary == "" {
		return "", fmt.Errorf("%w: provider returned empty content", pferrors.ErrSummarization)
	}

	return summary, nil
}
