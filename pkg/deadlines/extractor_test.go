package deadlines

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/minuted/pkg/ai"
)

type fakeChatClient struct {
	content string
	err     error
	gotReq  ai.CompletionRequest
}

func (f *fakeChatClient) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	f.gotReq = req
	return f.content, f.err
}

func TestExtractParsesCleanJSON(t *testing.T) {
	client := &fakeChatClient{content: `[
		{"title": "Finalize budget", "date": "2025-03-03", "description": "Q2 budget"},
		{"title": "Design review", "date": "next Friday", "description": ""}
	]`}
	extractor := NewExtractor(client, "", nil)

	items := extractor.Extract(context.Background(), "Let's finalize the budget by March 3 and review design by next Friday")
	require.Len(t, items, 2)
	assert.Equal(t, "Finalize budget", items[0].Title)
	assert.Equal(t, "2025-03-03", items[0].Date)
	assert.Equal(t, "Design review", items[1].Title)
	assert.Equal(t, "next Friday", items[1].Date)
}

func TestExtractRequestShape(t *testing.T) {
	client := &fakeChatClient{content: "[]"}
	extractor := NewExtractor(client, "", nil)

	extractor.Extract(context.Background(), "transcript text")

	assert.Equal(t, DefaultModel, client.gotReq.Model)
	assert.Contains(t, client.gotReq.System, "ONLY valid JSON")
	assert.Contains(t, client.gotReq.Prompt, "transcript text")
	require.NotNil(t, client.gotReq.Temperature)
	assert.InDelta(t, DefaultTemperature, *client.gotReq.Temperature, 0.001)
}

func TestExtractFencedJSON(t *testing.T) {
	client := &fakeChatClient{content: "```json\n[{\"title\": \"Ship release\", \"date\": \"2025-02-01\", \"description\": \"v2\"}]\n```"}
	extractor := NewExtractor(client, "gpt-4", nil)

	items := extractor.Extract(context.Background(), "transcript")
	require.Len(t, items, 1)
	assert.Equal(t, "Ship release", items[0].Title)
}

func TestExtractExplicitEmptyArray(t *testing.T) {
	extractor := NewExtractor(&fakeChatClient{content: "[]"}, "", nil)

	items := extractor.Extract(context.Background(), "no deadlines mentioned here")
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestExtractDegradesToEmptyOnMalformedOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"prose prefix", "Here is the JSON:\n[{\"title\": \"x\"}]"},
		{"truncated array", `[{"title": "x", "date":`},
		{"plain prose", "I could not find any deadlines in this transcript."},
		{"object instead of array", `{"title": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(&fakeChatClient{content: tt.content}, "", nil)

			items := extractor.Extract(context.Background(), "transcript")
			require.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestExtractDegradesToEmptyOnProviderError(t *testing.T) {
	extractor := NewExtractor(&fakeChatClient{err: errors.New("rate limited")}, "", nil)

	items := extractor.Extract(context.Background(), "transcript")
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestExtractJSONNullDegradesToEmpty(t *testing.T) {
	extractor := NewExtractor(&fakeChatClient{content: "null"}, "", nil)

	items := extractor.Extract(context.Background(), "transcript")
	require.NotNil(t, items)
	assert.Empty(t, items)
}
