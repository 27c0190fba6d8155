package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAskReturnsAnswerWithSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rag/query" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Question string `json:"question"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Question != "What is the spend trend?" {
			t.Errorf("Unexpected question: %q", req.Question)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"answer": "Trending up",
			"source_documents": [
				{"content": "Spend peaks in week 3", "metadata": {"location": "doc1", "score": 0.92}}
			]
		}`)
	}))
	defer server.Close()

	assistant := NewAssistant(server.URL)
	answer := assistant.Ask(context.Background(), "What is the spend trend?")

	if answer.Err != nil {
		t.Fatalf("Unexpected error: %v", answer.Err)
	}
	if answer.Answer != "Trending up" {
		t.Errorf("Expected answer 'Trending up', got %q", answer.Answer)
	}
	if len(answer.Sources) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(answer.Sources))
	}
	if answer.Sources[0].Metadata.Score != 0.92 {
		t.Errorf("Expected score 0.92 preserved, got %v", answer.Sources[0].Metadata.Score)
	}
	if answer.Sources[0].Metadata.Location != "doc1" {
		t.Errorf("Expected location doc1, got %q", answer.Sources[0].Metadata.Location)
	}
}

func TestAskConvertsFailureToSubstituteAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model unavailable"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	assistant := NewAssistant(server.URL)
	answer := assistant.Ask(context.Background(), "anything")

	if answer.Answer != substituteAnswer {
		t.Errorf("Expected substitute answer, got %q", answer.Answer)
	}
	if answer.Err == nil {
		t.Error("Expected underlying error recorded")
	}
	if answer.Sources == nil || len(answer.Sources) != 0 {
		t.Errorf("Expected empty sources, got %v", answer.Sources)
	}
}

func TestAskTransportFailureNeverPropagates(t *testing.T) {
	// Point at a server that is not listening
	assistant := NewAssistant("http://127.0.0.1:1")
	answer := assistant.Ask(context.Background(), "anything")

	if answer.Answer != substituteAnswer {
		t.Errorf("Expected substitute answer on transport failure, got %q", answer.Answer)
	}
	if answer.Err == nil {
		t.Error("Expected underlying transport error recorded")
	}
}

func TestAskStreamConcatenatesTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rag/stream" {
			http.NotFound(w, r)
			return
		}
		if q := r.URL.Query().Get("question"); q != "hello?" {
			t.Errorf("Unexpected question: %q", q)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: token\ndata: {\"token\":\"Hel\"}\n\n")
		fmt.Fprint(w, "event: token\ndata: {\"token\":\"lo\"}\n\n")
		fmt.Fprint(w, "event: end\ndata: {}\n\n")
	}))
	defer server.Close()

	assistant := NewAssistant(server.URL)

	var tokens []string
	answer, err := assistant.AskStream(context.Background(), "hello?", func(token string) {
		tokens = append(tokens, token)
	})
	if err != nil {
		t.Fatalf("AskStream failed: %v", err)
	}

	if len(tokens) != 2 || tokens[0] != "Hel" || tokens[1] != "lo" {
		t.Errorf("Expected sink to receive [Hel lo], got %v", tokens)
	}
	if answer.Answer != "Hello" {
		t.Errorf("Expected concatenated answer 'Hello', got %q", answer.Answer)
	}
	if answer.Sources == nil || len(answer.Sources) != 0 {
		t.Errorf("Expected empty source list in streaming mode, got %v", answer.Sources)
	}
}

func TestAskStreamErrorEventFailsOperation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: token\ndata: {\"token\":\"partial\"}\n\n")
		fmt.Fprint(w, "event: error\ndata: {\"error\":\"model unavailable\"}\n\n")
	}))
	defer server.Close()

	assistant := NewAssistant(server.URL)

	_, err := assistant.AskStream(context.Background(), "hello?", func(string) {})
	if err == nil {
		t.Fatal("Expected error from stream error event")
	}
}

func TestAskStreamClosedWithoutEndEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: token\ndata: {\"token\":\"partial\"}\n\n")
		// Connection closes without a terminal event
	}))
	defer server.Close()

	assistant := NewAssistant(server.URL)

	_, err := assistant.AskStream(context.Background(), "hello?", func(string) {})
	if err == nil {
		t.Fatal("Expected error when stream closes before end event")
	}
}
