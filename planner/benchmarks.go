package planner

import "precisionturn/plan"

// Benchmark holds the industry reference numbers used to sanity-check
// a proposed plan
type Benchmark struct {
	CostPerDay         float64 `json:"cost_per_day"`
	SafetyIncidentRate float64 `json:"safety_incident_rate"`
}

// industryBenchmarks by plant type. Refinery numbers double as the
// fallback for plant types we have no data for.
var industryBenchmarks = map[string]Benchmark{
	"refinery": {
		CostPerDay:         1500000,
		SafetyIncidentRate: 0.5,
	},
	"chemical": {
		CostPerDay:         950000,
		SafetyIncidentRate: 0.4,
	},
	"power": {
		CostPerDay:         700000,
		SafetyIncidentRate: 0.3,
	},
}

// BenchmarkFor returns the benchmark for a plant type, falling back to
// refinery numbers
func BenchmarkFor(plantType string) Benchmark {
	if b, ok := industryBenchmarks[plantType]; ok {
		return b
	}
	return industryBenchmarks["refinery"]
}

// AnalyzeScope checks whether the proposed budget and duration are
// realistic against industry benchmarks
func AnalyzeScope(details plan.Details) plan.ScopeAnalysis {
	bench := BenchmarkFor(details.PlantType)

	var dailyCost float64
	if details.Duration > 0 {
		dailyCost = details.Budget / float64(details.Duration)
	}
	comparison := dailyCost / bench.CostPerDay

	return plan.ScopeAnalysis{
		IsRealistic:         comparison >= 0.7 && comparison <= 1.3,
		BenchmarkComparison: comparison,
		Recommendations:     scopeRecommendations(comparison),
	}
}

func scopeRecommendations(comparison float64) []string {
	switch {
	case comparison < 0.7:
		return []string{
			"Budget may be insufficient for scope",
			"Consider reducing scope or increasing budget",
			"Focus on critical path items only",
		}
	case comparison > 1.3:
		return []string{
			"Budget higher than industry average",
			"Opportunity for scope optimization",
			"Consider parallel work streams",
		}
	default:
		return []string{"Budget aligns with industry benchmarks"}
	}
}
