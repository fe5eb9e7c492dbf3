package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	return client, srv
}

func TestTranscribeSendsMultipartAndParsesText(t *testing.T) {
	var gotModel, gotFilename string

	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		gotFilename = header.Filename

		json.NewEncoder(w).Encode(map[string]string{"text": "  budget review next week  "})
	}))
	defer srv.Close()

	text, err := client.Transcribe(context.Background(), strings.NewReader("fake-audio"), "standup.mp3", "whisper-1")
	require.NoError(t, err)
	assert.Equal(t, "budget review next week", text)
	assert.Equal(t, "whisper-1", gotModel)
	assert.Equal(t, "standup.mp3", gotFilename)
}

func TestCompleteSendsMessagesAndTemperature(t *testing.T) {
	var gotPayload map[string]any

	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "[]"}},
			},
		})
	}))
	defer srv.Close()

	temp := float32(0.3)
	content, err := client.Complete(context.Background(), CompletionRequest{
		Model:       "gpt-4",
		System:      "respond with JSON only",
		Prompt:      "extract deadlines",
		Temperature: &temp,
	})
	require.NoError(t, err)
	assert.Equal(t, "[]", content)

	assert.Equal(t, "gpt-4", gotPayload["model"])
	assert.InDelta(t, 0.3, gotPayload["temperature"], 0.001)

	messages := gotPayload["messages"].([]any)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
}

func TestCompleteOmitsTemperatureWhenUnset(t *testing.T) {
	var gotPayload map[string]any

	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "ok"}}},
		})
	}))
	defer srv.Close()

	_, err := client.Complete(context.Background(), CompletionRequest{Model: "gpt-4o-mini", Prompt: "hi"})
	require.NoError(t, err)
	_, present := gotPayload["temperature"]
	assert.False(t, present)
}

func TestAPIErrorIncludesProviderMessage(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Unsupported file format", "type": "invalid_request_error"},
		})
	}))
	defer srv.Close()

	_, err := client.Transcribe(context.Background(), strings.NewReader("x"), "notes.xyz", "whisper-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported file format")
	assert.Contains(t, err.Error(), "status 400")
}

func TestCompleteFailsOnEmptyChoices(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	_, err := client.Complete(context.Background(), CompletionRequest{Model: "gpt-4", Prompt: "x"})
	assert.Error(t, err)
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.Complete(context.Background(), CompletionRequest{Model: "gpt-4", Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}
