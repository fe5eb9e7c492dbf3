package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pferrors "github.com/otherjamesbrown/minuted/pkg/errors"
)

func TestInsertValidation(t *testing.T) {
	s := New(nil) // validation runs before the pool is touched

	tests := []struct {
		name    string
		meeting Meeting
	}{
		{"missing filename", Meeting{Transcript: "t", Summary: "s"}},
		{"empty transcript", Meeting{Filename: "a.mp3", Summary: "s"}},
		{"whitespace transcript", Meeting{Filename: "a.mp3", Transcript: "  ", Summary: "s"}},
		{"empty summary", Meeting{Filename: "a.mp3", Transcript: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Insert(context.Background(), &tt.meeting)
			require.Error(t, err)
			assert.True(t, pferrors.IsValidation(err))
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name                string
		limit, skip         int
		wantLimit, wantSkip int
	}{
		{"defaults", 0, 0, DefaultListLimit, 0},
		{"negative limit", -5, 0, DefaultListLimit, 0},
		{"over cap", 10000, 0, MaxListLimit, 0},
		{"negative skip", 10, -3, 10, 0},
		{"passthrough", 25, 100, 25, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, skip := clampPage(tt.limit, tt.skip)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantSkip, skip)
		})
	}
}

func TestAverageGuardsEmptyStore(t *testing.T) {
	assert.Zero(t, average(0, 0))
	assert.Zero(t, average(5, 0)) // impossible in practice, but never divide by zero
	assert.InDelta(t, 1.5, average(3, 2), 0.001)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `budget`, escapeLike("budget"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
}
