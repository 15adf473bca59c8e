package engine

import (
	"context"
	"sync"
	"time"

	"fixmate/internal/domain/ticket"
)

// stubRemote is an in-memory stand-in for the remote ticket store
type stubRemote struct {
	mu           sync.Mutex
	tickets      []ticket.Ticket
	fetchErr     error
	updateErr    error
	updateResult *ticket.Ticket
	updateCalls  []stubUpdateCall
}

type stubUpdateCall struct {
	id     string
	status ticket.Status
}

func (s *stubRemote) FetchTickets(ctx context.Context) ([]ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return append([]ticket.Ticket(nil), s.tickets...), nil
}

func (s *stubRemote) UpdateStatus(ctx context.Context, id string, status ticket.Status) (*ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls = append(s.updateCalls, stubUpdateCall{id: id, status: status})
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updateResult, nil
}

func (s *stubRemote) calls() []stubUpdateCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]stubUpdateCall(nil), s.updateCalls...)
}

var testEpoch = time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

func testTicket(id string, severity ticket.Severity, createdAt time.Time) ticket.Ticket {
	return ticket.Ticket{
		ID:        id,
		Category:  ticket.CategoryPothole,
		Severity:  severity,
		Status:    ticket.StatusSubmitted,
		Location:  &ticket.Location{Lat: 3.14, Lng: 101.68},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// newTestEngine loads the stub's tickets and pins the clock to testEpoch so
// the default 30-day window always covers them.
func newTestEngine(remote *stubRemote) *Engine {
	cfg := DefaultConfig()
	cfg.NotificationTTL = time.Minute
	e := New(remote, cfg)
	e.setClock(func() time.Time { return testEpoch })
	e.Reset()
	_ = e.Load(context.Background())
	return e
}
