package transcribe

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pferrors "github.com/otherjamesbrown/minuted/pkg/errors"
)

type fakeSpeechClient struct {
	text        string
	err         error
	gotFilename string
	gotModel    string
}

func (f *fakeSpeechClient) Transcribe(ctx context.Context, audio io.Reader, filename, model string) (string, error) {
	f.gotFilename = filename
	f.gotModel = model
	return f.text, f.err
}

func TestTranscribeReturnsProviderText(t *testing.T) {
	client := &fakeSpeechClient{text: "we ship on Friday"}
	adapter := NewAdapter(client, "", nil)

	text, err := adapter.Transcribe(context.Background(), []byte("audio"), "standup.mp3")
	require.NoError(t, err)
	assert.Equal(t, "we ship on Friday", text)
	assert.Equal(t, "standup.mp3", client.gotFilename)
	assert.Equal(t, DefaultModel, client.gotModel)
}

func TestTranscribeProviderErrorIsTranscriptionError(t *testing.T) {
	client := &fakeSpeechClient{err: errors.New("connection refused")}
	adapter := NewAdapter(client, "whisper-1", nil)

	_, err := adapter.Transcribe(context.Background(), []byte("audio"), "standup.mp3")
	require.Error(t, err)
	assert.True(t, pferrors.IsTranscription(err))
}

func TestTranscribeEmptyOutputIsTranscriptionError(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewAdapter(&fakeSpeechClient{text: tt.text}, "", nil)

			_, err := adapter.Transcribe(context.Background(), []byte("audio"), "standup.mp3")
			require.Error(t, err)
			assert.True(t, pferrors.IsTranscription(err))
			assert.Contains(t, err.Error(), "audio format")
		})
	}
}
