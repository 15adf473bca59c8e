package engine

import (
	"sort"

	"fixmate/internal/domain/ticket"
)

// SortQueue projects the filtered sequence into the operator's work queue:
// severity rank ascending (high first, unknown last), then creation time
// descending. The sort is stable, so tickets with equal keys keep their
// store order.
func SortQueue(in []ticket.Ticket) []ticket.Ticket {
	out := append([]ticket.Ticket(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Severity.Rank(), out[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
