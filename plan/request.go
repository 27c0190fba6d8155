package plan

// GenerateRequest carries the parameters submitted to the plan
// generation endpoint
type GenerateRequest struct {
	Title       string  `json:"title"`
	PlantType   string  `json:"plantType"`
	Duration    int     `json:"duration"`
	Budget      float64 `json:"budget"`
	Scope       string  `json:"scope"`
	Constraints string  `json:"constraints,omitempty"`
	RiskLevel   string  `json:"riskLevel,omitempty"`
}

// MissingFields returns the names of required fields that are absent
func (r GenerateRequest) MissingFields() []string {
	var missing []string
	if r.Title == "" {
		missing = append(missing, "title")
	}
	if r.PlantType == "" {
		missing = append(missing, "plantType")
	}
	if r.Duration == 0 {
		missing = append(missing, "duration")
	}
	if r.Budget == 0 {
		missing = append(missing, "budget")
	}
	if r.Scope == "" {
		missing = append(missing, "scope")
	}
	return missing
}

// Updates represents a partial update to a plan. Nil fields are left
// unchanged.
type Updates struct {
	Title   *string  `json:"title,omitempty"`
	Status  *Status  `json:"status,omitempty"`
	Details *Details `json:"details,omitempty"`
}
