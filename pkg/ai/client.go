// Package ai provides the OpenAI-backed provider client used by the
// transcription, summarization, and deadline extraction adapters.
//
// The client is constructed once at the composition root and injected into
// each adapter, so no package-level state is shared between requests.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Default endpoints and timeouts.
const (
	DefaultBaseURL = "https://api.openai.com/v1"

	// Transcription uploads whole audio files, so it gets a generous timeout.
	DefaultTranscribeTimeout = 10 * time.Minute
	DefaultChatTimeout       = 2 * time.Minute
)

// Config holds provider connection settings.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string

	// BaseURL overrides the provider endpoint (used in tests).
	BaseURL string

	// TranscribeTimeout bounds audio transcription requests.
	TranscribeTimeout time.Duration

	// ChatTimeout bounds chat completion requests.
	ChatTimeout time.Duration
}

// Client talks to the OpenAI HTTP API.
type Client struct {
	apiKey            string
	baseURL           string
	transcribeTimeout time.Duration
	chatTimeout       time.Duration
	httpClient        *http.Client
}

// NewClient creates a provider client from the given config.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transcribeTimeout := cfg.TranscribeTimeout
	if transcribeTimeout == 0 {
		transcribeTimeout = DefaultTranscribeTimeout
	}
	chatTimeout := cfg.ChatTimeout
	if chatTimeout == 0 {
		chatTimeout = DefaultChatTimeout
	}

	return &Client{
		apiKey:            cfg.APIKey,
		baseURL:           strings.TrimSuffix(baseURL, "/"),
		transcribeTimeout: transcribeTimeout,
		chatTimeout:       chatTimeout,
		httpClient:        &http.Client{},
	}
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a chat completion call.
type CompletionRequest struct {
	// Model selects the generation model. Required.
	Model string

	// System is an optional system-level instruction.
	System string

	// Prompt is the user prompt text.
	Prompt string

	// Temperature controls randomness. Nil means provider default.
	Temperature *float32
}

// Transcribe sends audio bytes to the speech-to-text endpoint and returns the
// transcript text. The filename is forwarded as a format hint for the provider.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename, model string) (string, error) {
	if err := c.ensureAPIKey(); err != nil {
		return "", err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("copy audio data: %w", err)
	}
	if err := writer.WriteField("model", model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.transcribeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", fmt.Errorf("create transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", decodeAPIError(resp)
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}

	return strings.TrimSpace(payload.Text), nil
}

// Complete sends a chat completion request and returns the raw message content.
func (c *Client) Complete(ctx context.Context, creq CompletionRequest) (string, error) {
	if err := c.ensureAPIKey(); err != nil {
		return "", err
	}

	messages := make([]Message, 0, 2)
	if creq.System != "" {
		messages = append(messages, Message{Role: "system", Content: creq.System})
	}
	messages = append(messages, Message{Role: "user", Content: creq.Prompt})

	payload := map[string]any{
		"model":    creq.Model,
		"messages": messages,
	}
	if creq.Temperature != nil {
		payload["temperature"] = *creq.Temperature
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode completion payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.chatTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", buf)
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", decodeAPIError(resp)
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	return response.Choices[0].Message.Content, nil
}

func (c *Client) ensureAPIKey() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return fmt.Errorf("openai api key is not configured")
	}
	return nil
}

// decodeAPIError extracts a useful message from a provider error response.
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("openai api error: status %d type %s message %s", resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
	}

	return fmt.Errorf("openai api error: status %d body %s", resp.StatusCode, string(body))
}
