// Package transcribe adapts the speech-to-text provider for the meeting pipeline.
package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	pferrors "github.com/otherjamesbrown/minuted/pkg/errors"
	"github.com/otherjamesbrown/minuted/pkg/logging"
)

// DefaultModel is the speech-to-text model used when none is configured.
const DefaultModel = "whisper-1"

// SpeechClient is the provider call the adapter depends on.
// Satisfied by *ai.Client.
type SpeechClient interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, model string) (string, error)
}

// Adapter turns raw audio bytes into transcript text.
type Adapter struct {
	client SpeechClient
	model  string
	logger logging.Logger
}

// NewAdapter creates a transcription adapter. An empty model selects DefaultModel.
func NewAdapter(client SpeechClient, model string, logger logging.Logger) *Adapter {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Adapter{client: client, model: model, logger: logger}
}

// Transcribe sends the audio to the provider and returns the transcript.
//
// An empty transcript is a failure, not a result: a legitimately short
// transcript and a provider that returned nothing usable must stay
// distinguishable, so this never returns a placeholder string.
func (a *Adapter) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	a.logger.Debug("sending audio for transcription",
		logging.F("filename", filename),
		logging.F("size_bytes", len(audio)))

	text, err := a.client.Transcribe(ctx, bytes.NewReader(audio), filename, a.model)
	if err != nil {
		return "", fmt.Errorf("%w: %v", pferrors.ErrTranscription, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: provider returned no text, confirm the audio format is supported", pferrors.ErrTranscription)
	}

	return text, nil
}
