package planner

import (
	"strings"
	"testing"

	"precisionturn/db"
)

func TestQueryTerms(t *testing.T) {
	terms := queryTerms("What is the spend trend?")
	want := []string{"what", "the", "spend", "trend"}
	if len(terms) != len(want) {
		t.Fatalf("Expected %v, got %v", want, terms)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("Term %d: expected %q, got %q", i, want[i], terms[i])
		}
	}
}

func TestQueryTermsDropsShortWords(t *testing.T) {
	terms := queryTerms("is it up or down?")
	for _, term := range terms {
		if len(term) < 3 {
			t.Errorf("Expected short word %q to be dropped", term)
		}
	}
}

func TestChunkScoreRange(t *testing.T) {
	chunk := db.KnowledgeChunk{
		Location: "benchmarks/refinery-costs",
		Content:  "Refinery turnarounds average $1.5M per day.",
		Keywords: []string{"spend", "trend", "cost"},
	}

	full := chunkScore([]string{"spend", "trend"}, chunk)
	if full != 1.0 {
		t.Errorf("Expected full match score 1.0, got %v", full)
	}

	partial := chunkScore([]string{"spend", "unrelatedterm"}, chunk)
	if partial != 0.5 {
		t.Errorf("Expected partial match score 0.5, got %v", partial)
	}

	none := chunkScore([]string{"unrelatedterm"}, chunk)
	if none != 0 {
		t.Errorf("Expected no-match score 0, got %v", none)
	}
}

func TestChunkScoreMatchesContentToo(t *testing.T) {
	chunk := db.KnowledgeChunk{
		Content:  "Vendor mobilization lead time drives performance.",
		Keywords: []string{},
	}
	if score := chunkScore([]string{"mobilization"}, chunk); score != 1.0 {
		t.Errorf("Expected content match, got %v", score)
	}
}

func TestBuildKnowledgePromptStuffsSources(t *testing.T) {
	sources := []SourceDocument{
		{Content: "Spend peaks in week 3.", Metadata: SourceMetadata{Location: "doc1", Score: 0.9}},
		{Content: "Slippage traces to discovery work.", Metadata: SourceMetadata{Location: "doc2", Score: 0.5}},
	}

	prompt := buildKnowledgePrompt("What is the spend trend?", sources)

	if !strings.Contains(prompt, "Spend peaks in week 3.") || !strings.Contains(prompt, "doc2") {
		t.Errorf("Expected sources stuffed into prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "Question: What is the spend trend?") {
		t.Errorf("Expected question at the end of the prompt, got %q", prompt)
	}
}
