// Package assistant declares the contract for the conversational assistant
// widget. The assistant itself is an external collaborator: a stateless
// wrapper around a third-party chat completion API that consumes ticket
// statistics and location summaries as read-only context. Only the
// interfaces live here.
package assistant

import (
	"context"

	"fixmate/internal/adapter/remote"
	"fixmate/internal/domain/ticket"
)

// ContextSource supplies the read-only aggregates the assistant may cite.
// *remote.Client satisfies it.
type ContextSource interface {
	// FetchStats returns backend-aggregated ticket counts
	FetchStats(ctx context.Context) (*remote.Stats, error)

	// FetchLocations returns ticket locations for one severity level
	FetchLocations(ctx context.Context, severity ticket.Severity) ([]ticket.Location, error)
}

// Assistant answers one operator prompt per call. Implementations hold no
// conversation state.
type Assistant interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

var _ ContextSource = (*remote.Client)(nil)
