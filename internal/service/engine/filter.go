package engine

import (
	"fixmate/internal/domain/ticket"
)

// Filter returns the order-preserving subset of tickets matching the
// criteria. Pure; the input slice is never mutated.
func Filter(tickets []ticket.Ticket, c ticket.Criteria) []ticket.Ticket {
	out := make([]ticket.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if c.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SetPendingCriteria replaces the pending criteria instance. The pending
// instance is bound to the filter controls and mutating it never re-derives
// the filtered view; only Apply or Reset do.
func (e *Engine) SetPendingCriteria(c ticket.Criteria) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = c.Clone()
	e.view.Pending = e.pending
	e.publishLocked()
}

// PendingCriteria returns the criteria currently being edited
func (e *Engine) PendingCriteria() ticket.Criteria {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pending.Clone()
}

// AppliedCriteria returns the criteria driving the derived view
func (e *Engine) AppliedCriteria() ticket.Criteria {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.applied.Clone()
}

// Apply copies the pending criteria into the applied instance and re-derives
// every projection.
func (e *Engine) Apply() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applied = e.pending.Clone()
	e.recomputeLocked()
	e.publishLocked()
}

// Reset restores both criteria instances to the defaults and re-derives
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	defaults := ticket.DefaultCriteria(e.now())
	e.pending = defaults.Clone()
	e.applied = defaults.Clone()
	e.recomputeLocked()
	e.publishLocked()
}
