package plan

// Status represents the lifecycle status of a turnaround plan
type Status string

const (
	StatusDraft      Status = "draft"
	StatusApproved   Status = "approved"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ValidStatus reports whether s is one of the closed status set
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusApproved, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Plan represents a turnaround (maintenance shutdown) project record
type Plan struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Status    Status  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	Details   Details `json:"details"`
}

// Details holds the plan parameters plus whatever the generation
// service attached to them
type Details struct {
	PlantType     string         `json:"plantType"`
	Duration      int            `json:"duration"`
	Budget        float64        `json:"budget"`
	Scope         string         `json:"scope"`
	Constraints   string         `json:"constraints,omitempty"`
	RiskLevel     string         `json:"riskLevel,omitempty"`
	ScopeAnalysis *ScopeAnalysis `json:"scope_analysis,omitempty"`
	GeneratedPlan *GeneratedPlan `json:"generated_plan,omitempty"`
}

// ScopeAnalysis is the feasibility check produced at generation time
type ScopeAnalysis struct {
	IsRealistic         bool     `json:"is_realistic"`
	BenchmarkComparison float64  `json:"benchmark_comparison"`
	Recommendations     []string `json:"recommendations"`
}

// GeneratedPlan is the structured breakdown produced by the plan
// generation service
type GeneratedPlan struct {
	Milestones     []Milestone     `json:"milestones,omitempty"`
	Resources      *Resources      `json:"resources,omitempty"`
	RiskAssessment *RiskAssessment `json:"risk_assessment,omitempty"`
	CostBreakdown  []CostItem      `json:"cost_breakdown,omitempty"`
	SafetyPlan     *SafetyPlan     `json:"safety_plan,omitempty"`

	// Summary carries the raw model output when it could not be
	// parsed into the structured sections
	Summary string `json:"summary,omitempty"`
}

// Milestone represents one phase of the turnaround schedule
type Milestone struct {
	Title        string   `json:"title"`
	Duration     int      `json:"duration"`
	Deliverables []string `json:"deliverables,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Resources lists personnel and equipment requirements
type Resources struct {
	Personnel []Personnel `json:"personnel,omitempty"`
	Equipment []Equipment `json:"equipment,omitempty"`
}

// Personnel represents a staffing requirement
type Personnel struct {
	Role   string `json:"role"`
	Count  int    `json:"count"`
	Skills string `json:"skills,omitempty"`
}

// Equipment represents an equipment requirement
type Equipment struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// RiskAssessment holds the high-risk items identified for the plan
type RiskAssessment struct {
	HighRisks []Risk `json:"high_risks,omitempty"`
}

// Risk represents a single identified risk with its mitigation
type Risk struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Mitigation  string `json:"mitigation"`
}

// CostItem represents one line of the cost breakdown
type CostItem struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Details  string  `json:"details,omitempty"`
}

// SafetyPlan lists permits and protocols required for execution
type SafetyPlan struct {
	RequiredPermits []string `json:"required_permits,omitempty"`
	SafetyProtocols []string `json:"safety_protocols,omitempty"`
}

// Empty reports whether the generated plan carries no content at all
func (g *GeneratedPlan) Empty() bool {
	if g == nil {
		return true
	}
	return len(g.Milestones) == 0 &&
		g.Resources == nil &&
		g.RiskAssessment == nil &&
		len(g.CostBreakdown) == 0 &&
		g.SafetyPlan == nil &&
		g.Summary == ""
}

// HasGeneratedPlan reports whether the plan carries a usable generated
// breakdown. Cached copies failing this check are not trusted.
func (p *Plan) HasGeneratedPlan() bool {
	return p != nil && !p.Details.GeneratedPlan.Empty()
}

// Editable reports whether the plan may still be edited. Approved and
// completed plans are locked at the edit boundary.
func (p *Plan) Editable() bool {
	return p.Status != StatusApproved && p.Status != StatusCompleted
}
