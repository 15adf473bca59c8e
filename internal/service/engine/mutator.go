package engine

import (
	"context"
	"fmt"
	"log"

	"fixmate/internal/domain/ticket"
)

// SetStatus issues a status-change request against the remote store and
// reconciles the result into the collection. The update is write-through,
// never speculative: nothing changes locally until the remote confirms. On
// failure the collection is untouched and a retryable notification is
// raised whose action re-invokes this exact call.
func (e *Engine) SetStatus(ctx context.Context, id string, status ticket.Status) error {
	updated, err := e.remote.UpdateStatus(ctx, id, status)
	if err != nil {
		log.Printf("status update failed for ticket %s: %v", id, err)
		e.notifier.PushAction("Failed to update status", "Retry", func() {
			if err := e.SetStatus(context.Background(), id, status); err != nil {
				log.Printf("status update retry failed for ticket %s: %v", id, err)
			}
		})
		return fmt.Errorf("setting status %q on ticket %s: %w", status, id, err)
	}

	e.mu.Lock()
	if updated != nil {
		// The response body is authoritative.
		e.replaceLocked(*updated)
	} else {
		// Confirmed but bodiless; best-effort local patch.
		e.patchLocked(id, ticket.StatusPatch{Status: status, UpdatedAt: e.now()})
	}
	e.refreshSelectedLocked()
	e.recomputeLocked()
	e.publishLocked()
	e.mu.Unlock()

	e.notifier.Push("Status updated")
	return nil
}

// CycleStatus advances a ticket to the next status in the distinct-status
// cycle: the three canonical values plus anything else observed in the
// collection, wrapping at the end. Falls back to the fixed canonical cycle
// when the current status is not in the derived set.
func (e *Engine) CycleStatus(ctx context.Context, id string) error {
	e.mu.RLock()
	i, ok := e.index[id]
	var current ticket.Status
	if ok {
		current = e.tickets[i].Status
	}
	statuses := e.distinctStatusesLocked()
	e.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ticket.ErrNotFound, id)
	}
	return e.SetStatus(ctx, id, nextStatus(statuses, current))
}

func nextStatus(statuses []ticket.Status, current ticket.Status) ticket.Status {
	if len(statuses) == 0 {
		statuses = ticket.Statuses
	}
	for i, s := range statuses {
		if s == current {
			return statuses[(i+1)%len(statuses)]
		}
	}
	for i, s := range ticket.Statuses {
		if s == current {
			return ticket.Statuses[(i+1)%len(ticket.Statuses)]
		}
	}
	return ticket.StatusSubmitted
}
