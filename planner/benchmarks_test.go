package planner

import (
	"strings"
	"testing"

	"precisionturn/plan"
)

func TestAnalyzeScopeRealistic(t *testing.T) {
	// 30 days at $1.5M/day benchmark -> $45M is exactly 1.0x
	analysis := AnalyzeScope(plan.Details{
		PlantType: "refinery",
		Duration:  30,
		Budget:    45000000,
	})

	if !analysis.IsRealistic {
		t.Error("Expected 1.0x benchmark to be realistic")
	}
	if analysis.BenchmarkComparison < 0.99 || analysis.BenchmarkComparison > 1.01 {
		t.Errorf("Expected comparison near 1.0, got %v", analysis.BenchmarkComparison)
	}
	if len(analysis.Recommendations) != 1 || !strings.Contains(analysis.Recommendations[0], "aligns") {
		t.Errorf("Unexpected recommendations: %v", analysis.Recommendations)
	}
}

func TestAnalyzeScopeUnderBudget(t *testing.T) {
	// Well under 0.7x of benchmark
	analysis := AnalyzeScope(plan.Details{
		PlantType: "refinery",
		Duration:  30,
		Budget:    20000000,
	})

	if analysis.IsRealistic {
		t.Error("Expected under-budget scope to be flagged unrealistic")
	}
	if !strings.Contains(strings.Join(analysis.Recommendations, " "), "insufficient") {
		t.Errorf("Expected insufficiency recommendation, got %v", analysis.Recommendations)
	}
}

func TestAnalyzeScopeOverBudget(t *testing.T) {
	// Above 1.3x of benchmark
	analysis := AnalyzeScope(plan.Details{
		PlantType: "refinery",
		Duration:  30,
		Budget:    90000000,
	})

	if analysis.IsRealistic {
		t.Error("Expected over-budget scope to be flagged unrealistic")
	}
	if !strings.Contains(strings.Join(analysis.Recommendations, " "), "higher than industry average") {
		t.Errorf("Expected over-budget recommendation, got %v", analysis.Recommendations)
	}
}

func TestAnalyzeScopeZeroDuration(t *testing.T) {
	analysis := AnalyzeScope(plan.Details{PlantType: "refinery", Budget: 45000000})

	if analysis.IsRealistic {
		t.Error("Expected zero-duration plan to be unrealistic")
	}
	if analysis.BenchmarkComparison != 0 {
		t.Errorf("Expected zero comparison, got %v", analysis.BenchmarkComparison)
	}
}

func TestBenchmarkForUnknownPlantTypeFallsBack(t *testing.T) {
	b := BenchmarkFor("offshore-platform")
	if b != industryBenchmarks["refinery"] {
		t.Errorf("Expected refinery fallback, got %+v", b)
	}
}
