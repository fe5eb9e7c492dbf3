package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/minuted/pkg/ai"
	pferrors "github.com/otherjamesbrown/minuted/pkg/errors"
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

func TestSummarizeUsesFixedTemplate(t *testing.T) {
	client := &fakeChatClient{content: "1. Decisions\n2. Action items\n3. Next steps"}
	adapter := NewAdapter(client, "")

	summary, err := adapter.Summarize(context.Background(), "we agreed to ship Friday")
	require.NoError(t, err)
	assert.Equal(t, "1. Decisions\n2. Action items\n3. Next steps", summary)

	assert.Equal(t, DefaultModel, client.gotReq.Model)
	assert.Contains(t, client.gotReq.Prompt, "Key decisions")
	assert.Contains(t, client.gotReq.Prompt, "Action items")
	assert.Contains(t, client.gotReq.Prompt, "Next steps")
	assert.Contains(t, client.gotReq.Prompt, "we agreed to ship Friday")
}

func TestSummarizeTrimsWhitespace(t *testing.T) {
	adapter := NewAdapter(&fakeChatClient{content: "  summary text \n"}, "gpt-4o-mini")

	summary, err := adapter.Summarize(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, "summary text", summary)
}

func TestSummarizeEmptyContentFails(t *testing.T) {
	adapter := NewAdapter(&fakeChatClient{content: "   \n"}, "")

	_, err := adapter.Summarize(context.Background(), "transcript")
	require.Error(t, err)
	assert.True(t, pferrors.IsSummarization(err))
}

func TestSummarizeProviderErrorIsSummarizationError(t *testing.T) {
	adapter := NewAdapter(&fakeChatClient{err: errors.New("503 service unavailable")}, "")

	_, err := adapter.Summarize(context.Background(), "transcript")
	require.Error(t, err)
	assert.True(t, pferrors.IsSummarization(err))
}
