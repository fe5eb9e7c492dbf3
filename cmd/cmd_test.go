package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than max", "standup.mp3", 30, "standup.mp3"},
		{"exactly max", "abcde", 5, "abcde"},
		{"longer than max", "a-very-long-meeting-recording.mp3", 20, "a-very-long-meeti..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.input, tt.maxLen))
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "Key decisions", "Key decisions"},
		{"multi line", "## Summary\nKey decisions", "## Summary"},
		{"leading blank lines", "\n\n  Key decisions\nmore", "Key decisions"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstLine(tt.input))
		})
	}
}

func TestMeetingsCommandStructure(t *testing.T) {
	cmd := NewMeetingsCommand()

	want := []string{"list", "show", "search", "delete", "stats"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}

func TestProcessCommandRequiresArg(t *testing.T) {
	cmd := NewProcessCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
}

func TestAuthCommandStructure(t *testing.T) {
	cmd := NewAuthCommand()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "set-key")
	assert.Contains(t, names, "status")
	assert.Contains(t, names, "clear")
}
