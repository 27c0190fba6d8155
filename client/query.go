package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// substituteAnswer is shown when a non-streaming query fails; the chat
// transcript never shows a raw failure
const substituteAnswer = "I'm sorry, I encountered an error processing your request."

// SourceMetadata locates and scores a source excerpt
type SourceMetadata struct {
	Location string  `json:"location"`
	Score    float64 `json:"score"`
}

// SourceDocument is one excerpt the answer was grounded in
type SourceDocument struct {
	Content  string         `json:"content"`
	Metadata SourceMetadata `json:"metadata"`
}

// Answer is the result of a knowledge query
type Answer struct {
	Answer  string
	Sources []SourceDocument

	// Err records the underlying failure when Answer is a substitute.
	// It is informational; Ask never propagates it.
	Err error
}

// Assistant asks free-text questions of the knowledge base endpoint
type Assistant struct {
	baseURL    string
	httpClient *http.Client
}

// NewAssistant creates a query assistant for the given server base URL
func NewAssistant(baseURL string) *Assistant {
	return &Assistant{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

type queryRequest struct {
	Question string `json:"question"`
}

type queryResponse struct {
	Answer          string           `json:"answer"`
	SourceDocuments []SourceDocument `json:"source_documents"`
	Error           string           `json:"error,omitempty"`
}

// Ask sends the question and returns the answer with its sources.
// Failures are converted into a displayable substitute answer rather
// than propagated: the caller always gets something to render.
func (a *Assistant) Ask(ctx context.Context, question string) Answer {
	result, err := a.ask(ctx, question)
	if err != nil {
		logger.LogErr(err, "knowledge query failed")
		return Answer{Answer: substituteAnswer, Sources: []SourceDocument{}, Err: err}
	}
	return result
}

func (a *Assistant) ask(ctx context.Context, question string) (Answer, error) {
	body, err := json.Marshal(queryRequest{Question: question})
	if err != nil {
		return Answer{}, serr.Wrap(err, "failed to marshal query")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/api/rag/query", bytes.NewReader(body))
	if err != nil {
		return Answer{}, serr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Answer{}, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Answer{}, &TransportError{Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return Answer{}, &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	var qr queryResponse
	if err := json.Unmarshal(respBody, &qr); err != nil {
		return Answer{}, serr.Wrap(err, "failed to decode query response")
	}

	sources := qr.SourceDocuments
	if sources == nil {
		sources = []SourceDocument{}
	}
	return Answer{Answer: qr.Answer, Sources: sources}, nil
}

// AskStream opens the server's token stream for the question. Each
// incoming token is forwarded to sink as it arrives; the distinguished
// end event resolves the call with the concatenated answer. Streaming
// answers carry no source documents. Any stream-level error closes the
// connection and is returned; the connection is never left open past
// the first error or the end event.
func (a *Assistant) AskStream(ctx context.Context, question string, sink func(token string)) (Answer, error) {
	streamURL := a.baseURL + "/api/rag/stream?question=" + url.QueryEscape(question)

	req, err := http.NewRequestWithContext(ctx, "GET", streamURL, nil)
	if err != nil {
		return Answer{}, serr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Answer{}, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Answer{}, &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var sb strings.Builder
	var eventType string

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")

		case strings.HasPrefix(line, "data: "):
			data := strings.TrimPrefix(line, "data: ")

			switch eventType {
			case "token":
				var payload struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal([]byte(data), &payload); err != nil {
					logger.LogErr(err, "failed to parse token event")
					continue
				}
				sb.WriteString(payload.Token)
				sink(payload.Token)

			case "end":
				return Answer{Answer: sb.String(), Sources: []SourceDocument{}}, nil

			case "error":
				var payload struct {
					Error string `json:"error"`
				}
				if err := json.Unmarshal([]byte(data), &payload); err != nil {
					return Answer{}, serr.New("stream error")
				}
				return Answer{}, serr.New("stream error: " + payload.Error)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return Answer{}, serr.Wrap(err, "stream read failed")
	}
	return Answer{}, serr.New("stream closed before end event")
}
