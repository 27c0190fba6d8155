package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"precisionturn/config"
	"precisionturn/plan"
	"precisionturn/providers"
)

const generationMaxTokens = 4096

// planSchema is the JSON shape the model is asked to produce for the
// generated breakdown
const planSchema = `{
  "milestones": [
    {"title": string, "duration": number, "deliverables": [string], "dependencies": [string]}
  ],
  "resources": {
    "personnel": [{"role": string, "count": number, "skills": string}],
    "equipment": [{"type": string, "quantity": number}]
  },
  "risk_assessment": {
    "high_risks": [{"title": string, "description": string, "mitigation": string}]
  },
  "cost_breakdown": [{"category": string, "amount": number, "details": string}],
  "safety_plan": {"required_permits": [string], "safety_protocols": [string]}
}`

// Generator produces turnaround plans by delegating the detailed
// breakdown to the model API
type Generator struct {
	model *providers.ModelClient
}

// NewGenerator creates a plan generator backed by the model API
func NewGenerator() *Generator {
	return &Generator{model: providers.NewModelClient()}
}

// Generate builds the full plan details for the request: scope
// analysis, then the model-generated breakdown
func (g *Generator) Generate(ctx context.Context, req plan.GenerateRequest) (plan.Details, error) {
	details := plan.Details{
		PlantType:   req.PlantType,
		Duration:    req.Duration,
		Budget:      req.Budget,
		Scope:       req.Scope,
		Constraints: req.Constraints,
		RiskLevel:   req.RiskLevel,
	}

	analysis := AnalyzeScope(details)
	details.ScopeAnalysis = &analysis

	prompt := buildPrompt(req, analysis)

	resp, err := g.model.Complete(ctx, providers.CompletionRequest{
		Model:     config.Get().Model,
		Messages:  []providers.Message{{Role: "user", Content: prompt}},
		MaxTokens: generationMaxTokens,
	})
	if err != nil {
		return details, serr.Wrap(err, "plan generation failed")
	}

	details.GeneratedPlan = parseGeneratedPlan(resp.Text())
	return details, nil
}

// buildPrompt assembles the generation prompt with industry context
func buildPrompt(req plan.GenerateRequest, analysis plan.ScopeAnalysis) string {
	constraints := req.Constraints
	if constraints == "" {
		constraints = "None specified"
	}

	return fmt.Sprintf(`Create a detailed industrial turnaround plan for a %s with the following parameters:
- Title: %s
- Budget: $%.2f
- Duration: %d days
- Scope: %s
- Constraints: %s

Industry Context:
- Budget per day comparison: %.2fx industry average
- Recommendations: %s

Provide milestones, resource requirements, a risk assessment, a cost breakdown, and a safety plan.
Respond with only a JSON object exactly matching this schema:
%s`,
		req.PlantType, req.Title, req.Budget, req.Duration, req.Scope, constraints,
		analysis.BenchmarkComparison, strings.Join(analysis.Recommendations, ", "),
		planSchema)
}

// parseGeneratedPlan decodes the model output into the structured
// breakdown. Unparseable output is preserved as a plain summary rather
// than discarded.
func parseGeneratedPlan(text string) *plan.GeneratedPlan {
	cleaned := stripCodeFence(text)

	var gp plan.GeneratedPlan
	if err := json.Unmarshal([]byte(cleaned), &gp); err != nil || gp.Empty() {
		if err != nil {
			logger.LogErr(err, "failed to parse generated plan as JSON, keeping as summary")
		}
		return &plan.GeneratedPlan{Summary: strings.TrimSpace(text)}
	}
	return &gp
}

// stripCodeFence removes a surrounding markdown code fence, if present
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
