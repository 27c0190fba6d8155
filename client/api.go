package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rohanthewiz/serr"

	"precisionturn/plan"
)

// API issues plan CRUD requests against the PrecisionTurn server.
// Every operation is a single attempt: no retries are performed, the
// caller decides whether to retry.
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI creates a plan API client for the given base URL,
// e.g. "http://localhost:8001"
func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// ListPlans fetches all plans
func (a *API) ListPlans(ctx context.Context) ([]*plan.Plan, error) {
	var plans []*plan.Plan
	if err := a.do(ctx, "GET", "/api/plans", nil, &plans); err != nil {
		return nil, serr.Wrap(err, "failed to fetch plans")
	}
	return plans, nil
}

// GetPlan fetches one plan by id. A 404 response yields ErrNotFound.
func (a *API) GetPlan(ctx context.Context, id string) (*plan.Plan, error) {
	var p plan.Plan
	if err := a.do(ctx, "GET", "/api/plans/"+id, nil, &p); err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, serr.Wrap(err, "failed to fetch plan", "id", id)
	}
	return &p, nil
}

// GeneratePlan submits plan parameters for generation and returns the
// newly created plan
func (a *API) GeneratePlan(ctx context.Context, req plan.GenerateRequest) (*plan.Plan, error) {
	var p plan.Plan
	if err := a.do(ctx, "POST", "/api/plans/generate", req, &p); err != nil {
		return nil, serr.Wrap(err, "failed to generate plan")
	}
	return &p, nil
}

// UpdatePlan applies a partial update and returns the stored plan
func (a *API) UpdatePlan(ctx context.Context, id string, updates plan.Updates) (*plan.Plan, error) {
	var p plan.Plan
	if err := a.do(ctx, "PUT", "/api/plans/"+id, updates, &p); err != nil {
		return nil, serr.Wrap(err, "failed to update plan", "id", id)
	}
	return &p, nil
}

// DeletePlan removes a plan by id
func (a *API) DeletePlan(ctx context.Context, id string) error {
	if err := a.do(ctx, "DELETE", "/api/plans/"+id, nil, nil); err != nil {
		return serr.Wrap(err, "failed to delete plan", "id", id)
	}
	return nil
}

// do issues one HTTP request and decodes the JSON response into out
// when out is non-nil. Non-2xx statuses become *RequestError; network
// failures become *TransportError.
func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return serr.Wrap(err, "failed to marshal request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return serr.Wrap(err, "failed to create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return serr.Wrap(err, "failed to decode response")
	}
	return nil
}
