package engine

import (
	"math"

	"fixmate/internal/domain/mapview"
	"fixmate/internal/domain/ticket"
)

// severityColors color-codes markers by urgency
var severityColors = map[ticket.Severity]string{
	ticket.SeverityHigh:   "#D32F2F",
	ticket.SeverityMedium: "#F57C00",
	ticket.SeverityLow:    "#388E3C",
}

const defaultMarkerColor = "#333333"

// MapSyncConfig contains camera-framing defaults
type MapSyncConfig struct {
	DefaultCenter ticket.Location
	DefaultZoom   int
	FocusZoom     int
	FlyToZoom     int
	BoundsPad     float64
	DensityWeight float64
}

// MapSynchronizer reconciles the map's marker layer and optional density
// overlay with the filtered sequence. It owns the layer handles exclusively:
// they are acquired on Mount, released on Unmount, and mutated only through
// Reconcile. Markers are cleared and fully rebuilt on every change; ticket
// volumes are small enough that incremental diffing is not worth its
// bookkeeping.
type MapSynchronizer struct {
	cfg     MapSyncConfig
	markers mapview.MarkerLayer
	density mapview.DensityLayer
	mounted bool
}

// NewMapSynchronizer creates an unmounted synchronizer
func NewMapSynchronizer(cfg MapSyncConfig) *MapSynchronizer {
	return &MapSynchronizer{cfg: cfg}
}

// Mount attaches the layer handles for the host view's lifetime
func (m *MapSynchronizer) Mount(markers mapview.MarkerLayer, density mapview.DensityLayer) {
	m.markers = markers
	m.density = density
	m.mounted = true
}

// Unmount releases the layers on view teardown
func (m *MapSynchronizer) Unmount() {
	if !m.mounted {
		return
	}
	m.markers.Clear()
	m.density.Remove()
	m.markers = nil
	m.density = nil
	m.mounted = false
}

// defaultCamera is the zero-ticket framing: fixed city center, default zoom
func (m *MapSynchronizer) defaultCamera() mapview.Camera {
	return mapview.Camera{
		Kind:   mapview.CameraCenter,
		Center: m.cfg.DefaultCenter,
		Zoom:   m.cfg.DefaultZoom,
	}
}

// Reconcile rebuilds both layers from the filtered sequence and returns the
// camera framing plus the empty flag for the host view's empty-state
// message. Tickets without a location contribute no marker but still count
// toward the queue and stats elsewhere.
func (m *MapSynchronizer) Reconcile(filtered []ticket.Ticket, densityEnabled bool) (mapview.Camera, bool) {
	if !m.mounted {
		return m.defaultCamera(), true
	}

	m.markers.Clear()
	points := make([]ticket.Location, 0, len(filtered))
	for _, t := range filtered {
		if !t.HasLocation() {
			continue
		}
		points = append(points, *t.Location)
		color, ok := severityColors[t.Severity]
		if !ok {
			color = defaultMarkerColor
		}
		m.markers.Add(mapview.Marker{
			TicketID: t.ID,
			Location: *t.Location,
			Color:    color,
			Severity: t.Severity,
			Popup:    t.Notes,
		})
	}

	if len(points) == 0 {
		m.density.Remove()
		return m.defaultCamera(), true
	}

	if densityEnabled {
		weighted := make([]mapview.DensityPoint, len(points))
		for i, p := range points {
			weighted[i] = mapview.DensityPoint{Location: p, Weight: m.cfg.DensityWeight}
		}
		m.density.SetPoints(weighted)
	} else {
		m.density.Remove()
	}

	if len(points) == 1 {
		return mapview.Camera{
			Kind:   mapview.CameraCenter,
			Center: points[0],
			Zoom:   m.cfg.FocusZoom,
		}, false
	}

	bounds, ok := paddedBounds(points, m.cfg.BoundsPad)
	if !ok {
		// Bad coordinates; fall back to the default view rather than erroring.
		return m.defaultCamera(), false
	}
	return mapview.Camera{Kind: mapview.CameraFit, Bounds: &bounds}, false
}

// FlyTo frames a single ticket at close-focus zoom
func (m *MapSynchronizer) FlyTo(t ticket.Ticket) mapview.Camera {
	if !t.HasLocation() {
		return m.defaultCamera()
	}
	return mapview.Camera{
		Kind:   mapview.CameraCenter,
		Center: *t.Location,
		Zoom:   m.cfg.FlyToZoom,
	}
}

// paddedBounds computes the bounding box of all points expanded by pad on
// each side. Non-finite coordinates make the box unusable.
func paddedBounds(points []ticket.Location, pad float64) (mapview.Bounds, bool) {
	b := mapview.Bounds{
		MinLat: math.Inf(1), MinLng: math.Inf(1),
		MaxLat: math.Inf(-1), MaxLng: math.Inf(-1),
	}
	for _, p := range points {
		if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
			return mapview.Bounds{}, false
		}
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MinLng = math.Min(b.MinLng, p.Lng)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MaxLng = math.Max(b.MaxLng, p.Lng)
	}
	latPad := (b.MaxLat - b.MinLat) * pad
	lngPad := (b.MaxLng - b.MinLng) * pad
	b.MinLat -= latPad
	b.MaxLat += latPad
	b.MinLng -= lngPad
	b.MaxLng += lngPad
	return b, true
}
