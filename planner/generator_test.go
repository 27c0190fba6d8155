package planner

import (
	"strings"
	"testing"

	"precisionturn/plan"
)

const sampleGeneratedJSON = `{
	"milestones": [
		{"title": "Pre-shutdown prep", "duration": 5, "deliverables": ["Scaffolding complete"]}
	],
	"cost_breakdown": [
		{"category": "Labor", "amount": 18000000, "details": "Craft labor"}
	],
	"safety_plan": {"required_permits": ["Hot work"], "safety_protocols": ["LOTO"]}
}`

func TestParseGeneratedPlanJSON(t *testing.T) {
	gp := parseGeneratedPlan(sampleGeneratedJSON)

	if gp.Empty() {
		t.Fatal("Expected parsed plan to be non-empty")
	}
	if len(gp.Milestones) != 1 || gp.Milestones[0].Title != "Pre-shutdown prep" {
		t.Errorf("Unexpected milestones: %+v", gp.Milestones)
	}
	if gp.Summary != "" {
		t.Errorf("Expected no summary for parseable output, got %q", gp.Summary)
	}
}

func TestParseGeneratedPlanFencedJSON(t *testing.T) {
	fenced := "```json\n" + sampleGeneratedJSON + "\n```"
	gp := parseGeneratedPlan(fenced)

	if len(gp.Milestones) != 1 {
		t.Errorf("Expected fenced JSON parsed, got %+v", gp)
	}
}

func TestParseGeneratedPlanUnstructuredFallback(t *testing.T) {
	text := "Phase 1: shut down the unit.\nPhase 2: inspect vessels."
	gp := parseGeneratedPlan(text)

	if gp.Summary != text {
		t.Errorf("Expected unparseable output kept as summary, got %q", gp.Summary)
	}
	if gp.Empty() {
		t.Error("Expected fallback plan to be non-empty")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildPromptIncludesParametersAndSchema(t *testing.T) {
	req := plan.GenerateRequest{
		Title:     "Unit 4 Turnaround",
		PlantType: "refinery",
		Duration:  30,
		Budget:    45000000,
		Scope:     "FCC overhaul",
	}
	analysis := AnalyzeScope(plan.Details{PlantType: req.PlantType, Duration: req.Duration, Budget: req.Budget})

	prompt := buildPrompt(req, analysis)

	for _, want := range []string{"Unit 4 Turnaround", "refinery", "30 days", "FCC overhaul", "milestones", "safety_plan", "None specified"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}
