package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"precisionturn/config"
	"precisionturn/db"
	"precisionturn/providers"
)

const (
	retrievalResults = 4
	answerMaxTokens  = 1024
)

const knowledgeSystemPrompt = `You are the Turnaround Navigator assistant for industrial plant
turnarounds. Answer the question using only the provided context excerpts.
If the context does not cover the question, say so briefly.`

// SourceMetadata locates and scores a retrieved excerpt
type SourceMetadata struct {
	Location string  `json:"location"`
	Score    float64 `json:"score"`
}

// SourceDocument is one excerpt an answer was grounded in
type SourceDocument struct {
	Content  string         `json:"content"`
	Metadata SourceMetadata `json:"metadata"`
}

// Knowledge answers free-text questions against the stored knowledge
// base, grounding each answer in retrieved excerpts
type Knowledge struct {
	model *providers.ModelClient
	store *db.DB
}

// NewKnowledge creates the knowledge query service
func NewKnowledge(store *db.DB) *Knowledge {
	return &Knowledge{
		model: providers.NewModelClient(),
		store: store,
	}
}

// Query answers a question and returns the supporting source documents
func (k *Knowledge) Query(ctx context.Context, question string) (string, []SourceDocument, error) {
	sources, err := k.Retrieve(question)
	if err != nil {
		return "", nil, err
	}

	resp, err := k.model.Complete(ctx, providers.CompletionRequest{
		Model:     config.Get().Model,
		System:    knowledgeSystemPrompt,
		Messages:  []providers.Message{{Role: "user", Content: buildKnowledgePrompt(question, sources)}},
		MaxTokens: answerMaxTokens,
	})
	if err != nil {
		return "", nil, serr.Wrap(err, "knowledge query failed")
	}

	return resp.Text(), sources, nil
}

// StreamQuery answers a question, forwarding each incremental text
// token to onToken. The concatenated answer is returned. Streaming
// answers carry no source documents.
func (k *Knowledge) StreamQuery(ctx context.Context, question string, onToken func(string) error) (string, error) {
	sources, err := k.Retrieve(question)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	err = k.model.StreamCompletion(ctx, providers.CompletionRequest{
		Model:     config.Get().Model,
		System:    knowledgeSystemPrompt,
		Messages:  []providers.Message{{Role: "user", Content: buildKnowledgePrompt(question, sources)}},
		MaxTokens: answerMaxTokens,
	}, func(event providers.StreamEvent) error {
		token := event.TextDelta()
		if token == "" {
			return nil
		}
		sb.WriteString(token)
		return onToken(token)
	})
	if err != nil {
		return "", serr.Wrap(err, "knowledge stream failed")
	}

	return sb.String(), nil
}

// Retrieve returns the best-matching excerpts for the question,
// scored in [0,1] and ordered by descending relevance
func (k *Knowledge) Retrieve(question string) ([]SourceDocument, error) {
	chunks, err := k.store.ListKnowledgeChunks()
	if err != nil {
		return nil, err
	}

	terms := queryTerms(question)
	if len(terms) == 0 {
		return []SourceDocument{}, nil
	}

	var sources []SourceDocument
	for _, c := range chunks {
		score := chunkScore(terms, c)
		if score == 0 {
			continue
		}
		sources = append(sources, SourceDocument{
			Content:  c.Content,
			Metadata: SourceMetadata{Location: c.Location, Score: score},
		})
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Metadata.Score > sources[j].Metadata.Score
	})
	if len(sources) > retrievalResults {
		sources = sources[:retrievalResults]
	}
	if sources == nil {
		sources = []SourceDocument{}
	}
	return sources, nil
}

// chunkScore is the fraction of query terms found in the chunk's
// keywords or content
func chunkScore(terms []string, c db.KnowledgeChunk) float64 {
	haystack := strings.ToLower(strings.Join(c.Keywords, " ") + " " + c.Content)

	matched := 0
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// queryTerms lowercases and tokenizes the question, dropping short
// stop-ish words that would match everything
func queryTerms(question string) []string {
	fields := strings.Fields(strings.ToLower(question))

	var terms []string
	for _, f := range fields {
		f = strings.Trim(f, ".,?!:;\"'()")
		if len(f) < 3 {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

func buildKnowledgePrompt(question string, sources []SourceDocument) string {
	var sb strings.Builder
	sb.WriteString("Context excerpts:\n")
	for i, s := range sources {
		fmt.Fprintf(&sb, "[%d] (%s) %s\n", i+1, s.Metadata.Location, s.Content)
	}
	fmt.Fprintf(&sb, "\nQuestion: %s", question)
	return sb.String()
}

// Seed loads the starter knowledge base when the chunks table is empty
func (k *Knowledge) Seed() error {
	count, err := k.store.KnowledgeChunkCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding knowledge base", "chunks", fmt.Sprint(len(seedChunks)))
	for _, c := range seedChunks {
		if err := k.store.AddKnowledgeChunk(c.location, c.content, c.keywords); err != nil {
			return err
		}
	}
	return nil
}

var seedChunks = []struct {
	location string
	content  string
	keywords []string
}{
	{
		location: "benchmarks/refinery-costs",
		content:  "Refinery turnarounds average $1.5M per day of execution. Spend trends typically peak in the mechanical phase, weeks 2 through 4, then taper during startup.",
		keywords: []string{"spend", "trend", "cost", "budget", "refinery", "daily"},
	},
	{
		location: "benchmarks/schedule",
		content:  "Typical refinery turnaround durations: small 20-30 days, medium 35-50 days, large 45-70 days. Schedule slippage beyond 15% usually traces to discovery work found during inspection.",
		keywords: []string{"schedule", "duration", "slippage", "delay", "inspection"},
	},
	{
		location: "safety/incident-rates",
		content:  "Industry safety incident rate for turnarounds is 0.5 recordables per 100k work hours. Permit-to-work violations and confined-space entries account for the majority of serious events.",
		keywords: []string{"safety", "incident", "permit", "confined", "recordable"},
	},
	{
		location: "vendors/performance",
		content:  "Vendor performance on turnarounds is driven by scaffolding and insulation crews' mobilization lead time. Late vendor mobilization is the leading cause of critical-path extension.",
		keywords: []string{"vendor", "performance", "scaffolding", "mobilization", "contractor"},
	},
	{
		location: "planning/scope-control",
		content:  "Scope growth after freeze averages 8-12% on well-run turnarounds. Each added work order past freeze costs roughly 1.6x its pre-freeze estimate.",
		keywords: []string{"scope", "growth", "freeze", "work", "order", "estimate"},
	},
}
