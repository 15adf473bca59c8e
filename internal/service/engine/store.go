package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"fixmate/internal/domain/ticket"
)

// Load fetches the remote collection and replaces the canonical ticket set
// atomically. On failure the previous collection, whatever its age, is kept
// intact and a single non-retryable notification is emitted. A load already
// in flight is not cancelled by a newer one; the last resolution wins.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	e.loading = true
	e.recomputeLocked()
	e.publishLocked()
	e.mu.Unlock()

	list, err := e.remote.FetchTickets(ctx)

	e.mu.Lock()
	e.loading = false
	if err != nil {
		e.recomputeLocked()
		e.publishLocked()
		e.mu.Unlock()
		log.Printf("ticket load failed: %v", err)
		e.notifier.Push("Failed to load tickets from backend")
		return fmt.Errorf("loading tickets: %w", err)
	}
	e.replaceAllLocked(list)
	e.refreshSelectedLocked()
	e.recomputeLocked()
	e.publishLocked()
	e.mu.Unlock()
	return nil
}

// Ticket returns one normalized ticket from the canonical collection
func (e *Engine) Ticket(id string) (ticket.Ticket, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	i, ok := e.index[id]
	if !ok {
		return ticket.Ticket{}, fmt.Errorf("%w: %s", ticket.ErrNotFound, id)
	}
	return e.tickets[i], nil
}

// Tickets returns a copy of the canonical collection in store order
func (e *Engine) Tickets() []ticket.Ticket {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]ticket.Ticket(nil), e.tickets...)
}

// DistinctStatuses returns the canonical lifecycle plus any extra status
// values observed in the collection, in first-seen order. Drives the
// cycle-to-next action so statuses the remote introduces stay reachable.
func (e *Engine) DistinctStatuses() []ticket.Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.distinctStatusesLocked()
}

func (e *Engine) distinctStatusesLocked() []ticket.Status {
	out := append([]ticket.Status(nil), ticket.Statuses...)
	seen := map[ticket.Status]bool{}
	for _, s := range out {
		seen[s] = true
	}
	for _, t := range e.tickets {
		if !seen[t.Status] {
			seen[t.Status] = true
			out = append(out, t.Status)
		}
	}
	return out
}

func (e *Engine) replaceAllLocked(list []ticket.Ticket) {
	e.tickets = append([]ticket.Ticket(nil), list...)
	e.index = make(map[string]int, len(e.tickets))
	for i, t := range e.tickets {
		e.index[t.ID] = i
	}
}

// replaceLocked swaps one record by id. Unknown ids are appended: a record
// confirmed by the remote store is canonical even if the local collection
// predates it.
func (e *Engine) replaceLocked(t ticket.Ticket) {
	if i, ok := e.index[t.ID]; ok {
		e.tickets[i] = t
		return
	}
	e.tickets = append(e.tickets, t)
	e.index[t.ID] = len(e.tickets) - 1
}

// patchLocked merges a status change into the existing record without a
// remote round trip. Used when the store's response has no usable body.
func (e *Engine) patchLocked(id string, patch ticket.StatusPatch) bool {
	i, ok := e.index[id]
	if !ok {
		return false
	}
	e.tickets[i].Status = patch.Status
	e.tickets[i].UpdatedAt = patch.UpdatedAt
	return true
}

// refreshSelectedLocked re-points the selection at the current record for
// its id, or drops it when the id left the collection, so the detail view
// and the list stay consistent within the same update cycle.
func (e *Engine) refreshSelectedLocked() {
	if e.selected == nil {
		return
	}
	i, ok := e.index[e.selected.ID]
	if !ok {
		e.selected = nil
		return
	}
	t := e.tickets[i]
	e.selected = &t
}

// Select marks one ticket as the detail-view selection
func (e *Engine) Select(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, ok := e.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ticket.ErrNotFound, id)
	}
	t := e.tickets[i]
	e.selected = &t
	e.recomputeLocked()
	e.publishLocked()
	return nil
}

// ClearSelection closes the detail view
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = nil
	e.recomputeLocked()
	e.publishLocked()
}

// SetDensity toggles the density overlay. Disabling removes the overlay
// entirely rather than hiding it.
func (e *Engine) SetDensity(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.density = enabled
	e.recomputeLocked()
	e.publishLocked()
}

// FlyTo frames the camera on one ticket at close-focus zoom and selects it.
// Tickets without a location cannot be flown to and leave the view as is.
func (e *Engine) FlyTo(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i, ok := e.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ticket.ErrNotFound, id)
	}
	t := e.tickets[i]
	if !t.HasLocation() {
		return nil
	}
	e.selected = &t
	e.recomputeLocked()
	e.view.Map.Camera = e.mapSync.FlyTo(t)
	e.publishLocked()
	return nil
}

// setClock overrides the engine's time source in tests
func (e *Engine) setClock(now func() time.Time) {
	e.now = now
}
