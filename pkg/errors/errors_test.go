package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		check   func(error) bool
		matches bool
	}{
		{"not found direct", ErrNotFound, IsNotFound, true},
		{"not found wrapped", fmt.Errorf("meeting abc: %w", ErrNotFound), IsNotFound, true},
		{"validation wrapped", fmt.Errorf("filename required: %w", ErrValidation), IsValidation, true},
		{"transcription wrapped", fmt.Errorf("provider 502: %w", ErrTranscription), IsTranscription, true},
		{"summarization wrapped", fmt.Errorf("empty content: %w", ErrSummarization), IsSummarization, true},
		{"calendar auth wrapped", fmt.Errorf("no credentials: %w", ErrCalendarAuth), IsCalendarAuth, true},
		{"mismatched sentinel", ErrSummarization, IsTranscription, false},
		{"plain error", fmt.Errorf("boom"), IsPersistence, false},
		{"nil error", nil, IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.check(tt.err))
		})
	}
}

func TestStageErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrTranscription, ErrSummarization, ErrExtraction, ErrPersistence, ErrCalendarAuth}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}
