package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"precisionturn/config"
)

const anthropicVersion = "2023-06-01"

// ModelClient handles communication with the model API used for plan
// generation and knowledge-base answers
type ModelClient struct {
	httpClient *http.Client
}

// NewModelClient creates a new model API client
func NewModelClient() *ModelClient {
	return &ModelClient{
		httpClient: &http.Client{},
	}
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents the request to create a completion
type CompletionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
	Stream    bool      `json:"stream"`
	System    string    `json:"system,omitempty"`
}

// CompletionResponse represents the response from the model API
type CompletionResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Role    string    `json:"role"`
	Content []Content `json:"content"`
	Model   string    `json:"model"`
	Usage   Usage     `json:"usage"`
}

// Content represents content in the response
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Usage represents token usage information
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// StreamEvent represents a server-sent event in the stream
type StreamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Index int `json:"index,omitempty"`
}

// TextDelta returns the incremental text carried by the event, if any
func (e StreamEvent) TextDelta() string {
	if e.Type == "content_block_delta" && e.Delta.Type == "text_delta" {
		return e.Delta.Text
	}
	return ""
}

// Text concatenates the text content of the response
func (r *CompletionResponse) Text() string {
	var sb strings.Builder
	for _, c := range r.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

// Complete sends a completion request and returns the full response
func (c *ModelClient) Complete(ctx context.Context, request CompletionRequest) (*CompletionResponse, error) {
	request.Stream = false

	resp, err := c.send(ctx, request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serr.Wrap(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, serr.New(fmt.Sprintf("model API error: %s - %s", resp.Status, string(body)))
	}

	var response CompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, serr.Wrap(err, "failed to parse response")
	}

	return &response, nil
}

// StreamCompletion sends a completion request and streams the response,
// invoking onEvent for each stream event
func (c *ModelClient) StreamCompletion(ctx context.Context, request CompletionRequest, onEvent func(StreamEvent) error) error {
	request.Stream = true

	resp, err := c.send(ctx, request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return serr.New(fmt.Sprintf("model API error: %s - %s", resp.Status, string(body)))
	}

	// Read SSE stream
	buf := make([]byte, 4096)
	var pending string

	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			pending += string(buf[:n])

			// Only complete lines are parsed; a partial line stays pending
			for {
				idx := strings.Index(pending, "\n")
				if idx < 0 {
					break
				}
				line := pending[:idx]
				pending = pending[idx+1:]

				if !strings.HasPrefix(line, "data: ") {
					continue
				}
				data := strings.TrimPrefix(line, "data: ")
				if data == "[DONE]" {
					return nil
				}

				var event StreamEvent
				if err := json.Unmarshal([]byte(data), &event); err != nil {
					logger.LogErr(err, "failed to parse stream event")
					continue
				}

				if err := onEvent(event); err != nil {
					return serr.Wrap(err, "error in event handler")
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return serr.Wrap(err, "failed to read stream")
		}
	}

	return nil
}

func (c *ModelClient) send(ctx context.Context, request CompletionRequest) (*http.Response, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, serr.Wrap(err, "failed to marshal request")
	}

	cfg := config.Get()
	logger.Debug("Model API request", "url", cfg.ModelAPIURL, "model", request.Model, "stream", fmt.Sprint(request.Stream))

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.ModelAPIURL, bytes.NewReader(requestBody))
	if err != nil {
		return nil, serr.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", cfg.ModelAPIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	if request.Stream {
		req.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serr.Wrap(err, "failed to send request")
	}
	return resp, nil
}
