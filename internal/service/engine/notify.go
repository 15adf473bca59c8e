package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification is one transient, dismissible message. It may carry a single
// action (label plus server-side callback), e.g. Retry on a failed status
// update. Notifications stack and dismiss independently and are never
// persisted.
type Notification struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	ActionLabel string    `json:"actionLabel,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type notifierEntry struct {
	n      Notification
	action func()
	timer  *time.Timer
}

// Notifier manages the stack of on-screen notifications, auto-dismissing
// each after a fixed timeout.
type Notifier struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   map[string]*notifierEntry
	onPush    func(Notification)
	onDismiss func(id string)
	closed    bool
}

// NewNotifier creates a notifier. onPush and onDismiss fan events out to
// subscribers; either may be nil.
func NewNotifier(ttl time.Duration, onPush func(Notification), onDismiss func(id string)) *Notifier {
	return &Notifier{
		ttl:       ttl,
		entries:   map[string]*notifierEntry{},
		onPush:    onPush,
		onDismiss: onDismiss,
	}
}

// Push raises a plain message and returns its id
func (nt *Notifier) Push(message string) string {
	return nt.push(message, "", nil)
}

// PushAction raises a message carrying one action
func (nt *Notifier) PushAction(message, actionLabel string, action func()) string {
	return nt.push(message, actionLabel, action)
}

func (nt *Notifier) push(message, actionLabel string, action func()) string {
	nt.mu.Lock()
	if nt.closed {
		nt.mu.Unlock()
		return ""
	}
	n := Notification{
		ID:          uuid.New().String(),
		Message:     message,
		ActionLabel: actionLabel,
		CreatedAt:   time.Now(),
	}
	entry := &notifierEntry{n: n, action: action}
	if nt.ttl > 0 {
		id := n.ID
		entry.timer = time.AfterFunc(nt.ttl, func() { nt.Dismiss(id) })
	}
	nt.entries[n.ID] = entry
	onPush := nt.onPush
	nt.mu.Unlock()

	if onPush != nil {
		onPush(n)
	}
	return n.ID
}

// Dismiss removes a notification without running its action. Unknown ids
// are ignored; dismissal is idempotent.
func (nt *Notifier) Dismiss(id string) {
	nt.mu.Lock()
	entry, ok := nt.entries[id]
	if ok {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(nt.entries, id)
	}
	onDismiss := nt.onDismiss
	nt.mu.Unlock()

	if ok && onDismiss != nil {
		onDismiss(id)
	}
}

// Invoke runs a notification's action and dismisses it. Returns false when
// the id is unknown or the notification has no action.
func (nt *Notifier) Invoke(id string) bool {
	nt.mu.Lock()
	entry, ok := nt.entries[id]
	var action func()
	if ok {
		action = entry.action
	}
	nt.mu.Unlock()

	if !ok || action == nil {
		return false
	}
	nt.Dismiss(id)
	action()
	return true
}

// Active returns the notifications currently on screen, oldest first
func (nt *Notifier) Active() []Notification {
	nt.mu.Lock()
	out := make([]Notification, 0, len(nt.entries))
	for _, entry := range nt.entries {
		out = append(out, entry.n)
	}
	nt.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Shutdown stops every pending dismissal timer and drops all notifications
func (nt *Notifier) Shutdown() {
	nt.mu.Lock()
	nt.closed = true
	for id, entry := range nt.entries {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(nt.entries, id)
	}
	nt.mu.Unlock()
}
