package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"

	"precisionturn/db"
	"precisionturn/planner"
)

// QueryRequest represents a knowledge base question
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse represents a knowledge base answer with its sources
type QueryResponse struct {
	Answer          string                   `json:"answer"`
	SourceDocuments []planner.SourceDocument `json:"source_documents"`
}

func ragQueryHandler(c rweb.Context) error {
	var req QueryRequest
	if err := json.Unmarshal(c.Request().Body(), &req); err != nil {
		return c.WriteError(serr.Wrap(err, "invalid request body"), 400)
	}
	if req.Question == "" {
		return c.WriteError(serr.New("No question provided"), 400)
	}

	database, err := db.GetDB()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get database"), 500)
	}

	kb := planner.NewKnowledge(database)
	answer, sources, err := kb.Query(context.Background(), req.Question)
	if err != nil {
		logger.LogErr(err, "knowledge query failed", "question", req.Question)
		return c.WriteError(serr.Wrap(err, "failed to process query"), 500)
	}

	return c.WriteJSON(QueryResponse{Answer: answer, SourceDocuments: sources})
}

// ragStreamHandler streams answer tokens over SSE. Each token arrives
// as a "token" event; a distinguished "end" event closes the stream.
func ragStreamHandler(c rweb.Context) error {
	question := c.Request().QueryParam("question")
	if question == "" {
		return c.WriteError(serr.New("No question provided"), 400)
	}

	database, err := db.GetDB()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get database"), 500)
	}

	// Set SSE headers
	c.Response().SetHeader("Content-Type", "text/event-stream")
	c.Response().SetHeader("Cache-Control", "no-cache")
	c.Response().SetHeader("Connection", "keep-alive")
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")

	kb := planner.NewKnowledge(database)
	_, err = kb.StreamQuery(context.Background(), question, func(token string) error {
		return writeSSE(c, "token", map[string]string{"token": token})
	})
	if err != nil {
		logger.LogErr(err, "knowledge stream failed", "question", question)
		// The stream is already open; surface the failure as an event
		_ = writeSSE(c, "error", map[string]string{"error": err.Error()})
		return nil
	}

	return writeSSE(c, "end", map[string]string{})
}

// writeSSE writes one server-sent event and flushes it
func writeSSE(c rweb.Context, eventType string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return serr.Wrap(err, "failed to marshal SSE payload")
	}

	if _, err := fmt.Fprintf(c.Response(), "event: %s\ndata: %s\n\n", eventType, payload); err != nil {
		return serr.Wrap(err, "failed to write SSE event")
	}

	if flusher, ok := c.Response().(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
