package controller

import "context"

// Panelist is the contract a seat on the panel must satisfy. The concrete
// implementation lives in the panel package; the controller only needs the
// role id for routing and the single-statement analysis call.
type Panelist interface {
	Role() string
	Analyze(ctx context.Context, subject, debateContext string) (string, error)
}

// Registry is the fixed mapping from role id to panelist, built once per
// session before the debate loop starts and immutable afterwards. Iteration
// order is registration order, which is also the closing-statement order.
type Registry struct {
	order  []string
	byRole map[string]Panelist
}

// NewRegistry builds a registry from panelists in registration order. A
// duplicate role id replaces the earlier panelist but keeps its position.
func NewRegistry(panelists ...Panelist) *Registry {
	r := &Registry{byRole: make(map[string]Panelist, len(panelists))}
	for _, p := range panelists {
		if _, exists := r.byRole[p.Role()]; !exists {
			r.order = append(r.order, p.Role())
		}
		r.byRole[p.Role()] = p
	}
	return r
}

// Get returns the panelist registered under role.
func (r *Registry) Get(role string) (Panelist, bool) {
	p, ok := r.byRole[role]
	return p, ok
}

// Roles returns a copy of the role ids in registration order.
func (r *Registry) Roles() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Panelists returns the panelists in registration order.
func (r *Registry) Panelists() []Panelist {
	out := make([]Panelist, 0, len(r.order))
	for _, role := range r.order {
		out = append(out, r.byRole[role])
	}
	return out
}

// Len returns the number of registered panelists.
func (r *Registry) Len() int { return len(r.order) }
