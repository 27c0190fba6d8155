package plan

import "testing"

func TestValidStatus(t *testing.T) {
	valid := []Status{StatusDraft, StatusApproved, StatusInProgress, StatusCompleted}
	for _, s := range valid {
		if !ValidStatus(s) {
			t.Errorf("Expected %s to be valid", s)
		}
	}
	for _, s := range []Status{"", "active", "archived"} {
		if ValidStatus(s) {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}

func TestGeneratedPlanEmpty(t *testing.T) {
	var nilPlan *GeneratedPlan
	if !nilPlan.Empty() {
		t.Error("Expected nil generated plan to be empty")
	}
	if !(&GeneratedPlan{}).Empty() {
		t.Error("Expected zero generated plan to be empty")
	}
	withMilestone := &GeneratedPlan{Milestones: []Milestone{{Title: "Shutdown"}}}
	if withMilestone.Empty() {
		t.Error("Expected plan with milestones to be non-empty")
	}
	withSummary := &GeneratedPlan{Summary: "free-form breakdown"}
	if withSummary.Empty() {
		t.Error("Expected plan with a summary to be non-empty")
	}
}

func TestHasGeneratedPlan(t *testing.T) {
	p := &Plan{Details: Details{}}
	if p.HasGeneratedPlan() {
		t.Error("Expected no generated plan")
	}
	p.Details.GeneratedPlan = &GeneratedPlan{CostBreakdown: []CostItem{{Category: "Labor", Amount: 1000000}}}
	if !p.HasGeneratedPlan() {
		t.Error("Expected generated plan to be detected")
	}
}

func TestEditableBoundary(t *testing.T) {
	cases := []struct {
		status   Status
		editable bool
	}{
		{StatusDraft, true},
		{StatusApproved, false},
		{StatusInProgress, true},
		{StatusCompleted, false},
	}
	for _, tc := range cases {
		p := &Plan{Status: tc.status}
		if p.Editable() != tc.editable {
			t.Errorf("Status %s: expected editable=%v", tc.status, tc.editable)
		}
	}
}

func TestGenerateRequestMissingFields(t *testing.T) {
	full := GenerateRequest{
		Title:     "Unit 4 Turnaround",
		PlantType: "refinery",
		Duration:  30,
		Budget:    45000000,
		Scope:     "FCC overhaul",
	}
	if missing := full.MissingFields(); len(missing) != 0 {
		t.Errorf("Expected no missing fields, got %v", missing)
	}

	empty := GenerateRequest{}
	missing := empty.MissingFields()
	if len(missing) != 5 {
		t.Errorf("Expected 5 missing fields, got %v", missing)
	}
}
