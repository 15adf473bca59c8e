package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fixmate/internal/domain/mapview"
	"fixmate/internal/domain/ticket"
)

// RemoteStore is the contract the remote ticket store exposes to the engine
type RemoteStore interface {
	// FetchTickets returns the full normalized collection
	FetchTickets(ctx context.Context) ([]ticket.Ticket, error)

	// UpdateStatus changes one ticket's status. It returns the updated
	// record when the store's response carries one, nil otherwise.
	UpdateStatus(ctx context.Context, id string, status ticket.Status) (*ticket.Ticket, error)
}

// Config contains engine tuning and map-framing defaults
type Config struct {
	DefaultCenter   ticket.Location
	DefaultZoom     int
	FocusZoom       int
	FlyToZoom       int
	BoundsPad       float64
	DensityWeight   float64
	NotificationTTL time.Duration
}

// DefaultConfig returns the stock dashboard configuration
func DefaultConfig() Config {
	return Config{
		DefaultCenter:   ticket.Location{Lat: 3.1390, Lng: 101.6869},
		DefaultZoom:     12,
		FocusZoom:       14,
		FlyToZoom:       20,
		BoundsPad:       0.1,
		DensityWeight:   0.6,
		NotificationTTL: 8 * time.Second,
	}
}

// Counts summarizes the filtered sequence for the footer stats
type Counts struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// MapState is the serializable rendering of the marker and density layers
type MapState struct {
	Markers        []mapview.Marker       `json:"markers"`
	Density        []mapview.DensityPoint `json:"density,omitempty"`
	DensityEnabled bool                   `json:"densityEnabled"`
	Camera         mapview.Camera         `json:"camera"`
	Empty          bool                   `json:"empty"`
}

// View is the derived view: the filtered sequence and every projection of it,
// recomputed as a whole on each change and never partially updated.
type View struct {
	Filtered  []ticket.Ticket `json:"filtered"`
	Queue     []ticket.Ticket `json:"queue"`
	Counts    Counts          `json:"counts"`
	Map       MapState        `json:"map"`
	Selected  *ticket.Ticket  `json:"selected,omitempty"`
	Applied   ticket.Criteria `json:"appliedFilters"`
	Pending   ticket.Criteria `json:"pendingFilters"`
	Loading   bool            `json:"loading"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// EventType discriminates stream events sent to subscribers
type EventType string

const (
	EventView                EventType = "view"
	EventNotification        EventType = "notification"
	EventNotificationDismiss EventType = "notification_dismissed"
)

// Event is one item on a subscriber's stream
type Event struct {
	Type           EventType     `json:"type"`
	View           *View         `json:"view,omitempty"`
	Notification   *Notification `json:"notification,omitempty"`
	NotificationID string        `json:"notificationId,omitempty"`
}

// Engine holds the canonical ticket collection and keeps the map, queue and
// stats projections consistent with the applied filter criteria. All state
// mutations are serialized through one mutex, mirroring the single event
// loop of the browser dashboard: network calls run outside the lock and
// their resolutions are applied atomically, so no reader ever observes a
// half-applied update.
type Engine struct {
	remote RemoteStore
	cfg    Config
	now    func() time.Time

	mu       sync.RWMutex
	tickets  []ticket.Ticket
	index    map[string]int
	pending  ticket.Criteria
	applied  ticket.Criteria
	selected *ticket.Ticket
	density  bool
	loading  bool
	view     View

	mapSync      *MapSynchronizer
	markerLayer  *MarkerBuffer
	densityLayer *DensityBuffer
	notifier     *Notifier

	subMu sync.Mutex
	subs  map[string]chan Event
}

// New creates an engine around a remote ticket store. The marker and density
// layers are mounted for the engine's lifetime and released by Close.
func New(remote RemoteStore, cfg Config) *Engine {
	e := &Engine{
		remote: remote,
		cfg:    cfg,
		now:    time.Now,
		index:  map[string]int{},
		subs:   map[string]chan Event{},
	}
	e.markerLayer = NewMarkerBuffer()
	e.densityLayer = NewDensityBuffer()
	e.mapSync = NewMapSynchronizer(MapSyncConfig{
		DefaultCenter: cfg.DefaultCenter,
		DefaultZoom:   cfg.DefaultZoom,
		FocusZoom:     cfg.FocusZoom,
		FlyToZoom:     cfg.FlyToZoom,
		BoundsPad:     cfg.BoundsPad,
		DensityWeight: cfg.DensityWeight,
	})
	e.mapSync.Mount(e.markerLayer, e.densityLayer)
	e.notifier = NewNotifier(cfg.NotificationTTL,
		func(n Notification) { e.broadcast(Event{Type: EventNotification, Notification: &n}) },
		func(id string) { e.broadcast(Event{Type: EventNotificationDismiss, NotificationID: id}) },
	)

	defaults := ticket.DefaultCriteria(e.now())
	e.pending = defaults.Clone()
	e.applied = defaults.Clone()

	e.mu.Lock()
	e.recomputeLocked()
	e.mu.Unlock()
	return e
}

// Close releases the map layers and stops pending notification timers
func (e *Engine) Close() {
	e.mapSync.Unmount()
	e.notifier.Shutdown()

	e.subMu.Lock()
	for id, ch := range e.subs {
		close(ch)
		delete(e.subs, id)
	}
	e.subMu.Unlock()
}

// View returns the current derived view snapshot
func (e *Engine) View() View {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.view
}

// Notifications returns the notifications currently on screen
func (e *Engine) Notifications() []Notification {
	return e.notifier.Active()
}

// DismissNotification removes one notification without running its action
func (e *Engine) DismissNotification(id string) {
	e.notifier.Dismiss(id)
}

// InvokeNotification runs a notification's action (e.g. Retry) and dismisses
// it. Returns false when the id is unknown or the notification carries no
// action.
func (e *Engine) InvokeNotification(id string) bool {
	return e.notifier.Invoke(id)
}

// Subscribe registers a stream of view and notification events. The channel
// is buffered; events are dropped rather than blocking the engine when a
// subscriber falls behind.
func (e *Engine) Subscribe() (string, <-chan Event) {
	ch := make(chan Event, 16)
	id := uuid.New().String()
	e.subMu.Lock()
	e.subs[id] = ch
	e.subMu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel
func (e *Engine) Unsubscribe(id string) {
	e.subMu.Lock()
	if ch, ok := e.subs[id]; ok {
		close(ch)
		delete(e.subs, id)
	}
	e.subMu.Unlock()
}

func (e *Engine) broadcast(ev Event) {
	e.subMu.Lock()
	for _, ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	e.subMu.Unlock()
}

// recomputeLocked rebuilds the derived view from the collection and the
// applied criteria. Callers hold e.mu.
func (e *Engine) recomputeLocked() {
	filtered := Filter(e.tickets, e.applied)
	camera, empty := e.mapSync.Reconcile(filtered, e.density)

	counts := Counts{Total: len(filtered)}
	for _, t := range filtered {
		switch t.Severity {
		case ticket.SeverityHigh:
			counts.High++
		case ticket.SeverityMedium:
			counts.Medium++
		case ticket.SeverityLow:
			counts.Low++
		}
	}

	e.view = View{
		Filtered: filtered,
		Queue:    SortQueue(filtered),
		Counts:   counts,
		Map: MapState{
			Markers:        e.markerLayer.Snapshot(),
			Density:        e.densityLayer.Snapshot(),
			DensityEnabled: e.density,
			Camera:         camera,
			Empty:          empty,
		},
		Selected:  e.selected,
		Applied:   e.applied,
		Pending:   e.pending,
		Loading:   e.loading,
		UpdatedAt: e.now(),
	}
}

// publishLocked broadcasts the current view. Callers hold e.mu.
func (e *Engine) publishLocked() {
	v := e.view
	e.broadcast(Event{Type: EventView, View: &v})
}
