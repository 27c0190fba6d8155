package client

import (
	"context"
	"sync"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"precisionturn/plan"
)

// Store holds the authoritative in-memory list of plans and the
// currently viewed plan for a UI session. All mutations go through the
// server first: the local list is only updated after the server
// confirms, trading latency for consistency.
//
// Each Store owns its own cache; multiple stores (e.g. in tests) do
// not interfere.
type Store struct {
	api   *API
	cache *Cache

	mu          sync.Mutex
	plans       []*plan.Plan
	current     *plan.Plan
	loading     bool
	loadingPlan bool
	lastError   string
	subscribers []func()
}

// NewStore creates a plan store backed by the given API client
func NewStore(api *API) *Store {
	return &Store{
		api:   api,
		cache: NewCache(),
	}
}

// Subscribe registers fn to be called after every state change. The
// returned function unsubscribes.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.subscribers[idx] = nil
		s.mu.Unlock()
	}
}

// Plans returns a snapshot of the current plan list
func (s *Store) Plans() []*plan.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*plan.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

// Current returns the currently viewed plan, or nil
func (s *Store) Current() *plan.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Loading reports whether a list-level operation is in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LoadingPlan reports whether a by-id fetch is in flight
func (s *Store) LoadingPlan() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingPlan
}

// LastError returns the most recent recorded error message, if any
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// List fetches and replaces the authoritative plan list. Failures are
// recorded in observable state rather than returned: the list view
// must stay usable after a transient failure, so the prior list is
// left untouched.
func (s *Store) List(ctx context.Context) []*plan.Plan {
	s.setLoading(true)
	defer s.setLoading(false)

	plans, err := s.api.ListPlans(ctx)
	if canceled(ctx) {
		return s.Plans()
	}
	if err != nil {
		logger.LogErr(err, "failed to fetch plans")
		s.setError(err.Error())
		return s.Plans()
	}

	s.mu.Lock()
	s.plans = plans
	s.lastError = ""
	s.mu.Unlock()
	s.notify()
	return s.Plans()
}

// GetByID returns the plan with the given id, consulting the cache
// first. A valid cache hit is returned without a network call. On a
// miss (or an untrusted hit) the plan is fetched, cached, and set as
// current. ErrNotFound propagates for a 404 so the caller can
// redirect; other failures propagate as well.
func (s *Store) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	if id == "" {
		return nil, serr.New("plan id is required")
	}

	if p, ok := s.cache.Get(id); ok {
		s.mu.Lock()
		s.current = p
		s.mu.Unlock()
		s.notify()
		return p, nil
	}

	s.setLoadingPlan(true)
	defer s.setLoadingPlan(false)

	p, err := s.api.GetPlan(ctx, id)
	if canceled(ctx) {
		return nil, ctx.Err()
	}
	if err != nil {
		s.setError(err.Error())
		return nil, err
	}

	s.cache.Put(id, p)
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()
	s.notify()
	return p, nil
}

// Create generates a new plan from the given parameters and appends it
// to the list. Failures propagate to the caller.
func (s *Store) Create(ctx context.Context, req plan.GenerateRequest) (*plan.Plan, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	p, err := s.api.GeneratePlan(ctx, req)
	if canceled(ctx) {
		return nil, ctx.Err()
	}
	if err != nil {
		s.setError(err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.plans = append(s.plans, p)
	s.mu.Unlock()
	s.notify()
	return p, nil
}

// Update applies a partial update to the plan with the given id. The
// local list entry, and the current plan if it matches, are replaced
// with the server's copy. When the id is not present locally the list
// reconciliation is a no-op; the server update still succeeds.
func (s *Store) Update(ctx context.Context, id string, updates plan.Updates) (*plan.Plan, error) {
	p, err := s.api.UpdatePlan(ctx, id, updates)
	if canceled(ctx) {
		return nil, ctx.Err()
	}
	if err != nil {
		s.setError(err.Error())
		return nil, err
	}

	s.cache.Put(id, p)
	s.mu.Lock()
	for i, existing := range s.plans {
		if existing.ID == id {
			s.plans[i] = p
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = p
	}
	s.mu.Unlock()
	s.notify()
	return p, nil
}

// Delete removes the plan with the given id. The local entry is
// removed and the current plan is cleared if it matched.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.api.DeletePlan(ctx, id); err != nil {
		if canceled(ctx) {
			return ctx.Err()
		}
		s.setError(err.Error())
		return err
	}
	if canceled(ctx) {
		return ctx.Err()
	}

	s.cache.Invalidate(id)
	s.mu.Lock()
	kept := s.plans[:0]
	for _, existing := range s.plans {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	s.plans = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// Duplicate creates a copy of the given plan: same parameters, title
// suffixed with " (Copy)", status reset to draft, new identity
// assigned by the server. It routes through Create and fails with
// whatever Create fails with.
func (s *Store) Duplicate(ctx context.Context, p *plan.Plan) (*plan.Plan, error) {
	if p == nil {
		return nil, serr.New("no plan to duplicate")
	}

	return s.Create(ctx, plan.GenerateRequest{
		Title:       p.Title + " (Copy)",
		PlantType:   p.Details.PlantType,
		Duration:    p.Details.Duration,
		Budget:      p.Details.Budget,
		Scope:       p.Details.Scope,
		Constraints: p.Details.Constraints,
		RiskLevel:   p.Details.RiskLevel,
	})
}

// Cache exposes the store's cache, mainly for tests and diagnostics
func (s *Store) Cache() *Cache {
	return s.cache
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.notify()
}

func (s *Store) setLoadingPlan(v bool) {
	s.mu.Lock()
	s.loadingPlan = v
	s.mu.Unlock()
	s.notify()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
	s.notify()
}

// notify invokes subscribers outside the store lock
func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		if fn != nil {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// canceled reports whether the operation's context has been canceled.
// A canceled operation must not apply state updates.
func canceled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
