package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutputIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{
		Level:       LevelDebug,
		ServiceName: "test-service",
		JSONFormat:  true,
		Output:      &buf,
	})

	log.Info("pipeline started", F("filename", "standup.mp3"), F("size", 1024))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pipeline started", entry["message"])
	assert.Equal(t, "test-service", entry["service_name"])
	assert.Equal(t, "standup.mp3", entry["filename"])
	assert.Equal(t, float64(1024), entry["size"])
}

func TestErrFieldRendersErrorString(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: LevelDebug, ServiceName: "test", JSONFormat: true, Output: &buf})

	log.Error("stage failed", Err(errors.New("provider timeout")))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "provider timeout", entry["error"])
}

func TestWithAttachesFieldsToAllEntries(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: LevelDebug, ServiceName: "test", JSONFormat: true, Output: &buf})

	child := log.With(F("meeting_id", "abc123"))
	child.Info("persisted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc123", entry["meeting_id"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: LevelError, ServiceName: "test", JSONFormat: true, Output: &buf})

	log.Debug("hidden")
	log.Info("hidden too")
	assert.Zero(t, buf.Len())

	log.Error("visible")
	assert.NotZero(t, buf.Len())
}
