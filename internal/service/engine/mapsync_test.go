package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmate/internal/domain/mapview"
	"fixmate/internal/domain/ticket"
)

func newTestSync() (*MapSynchronizer, *MarkerBuffer, *DensityBuffer) {
	cfg := DefaultConfig()
	m := NewMapSynchronizer(MapSyncConfig{
		DefaultCenter: cfg.DefaultCenter,
		DefaultZoom:   cfg.DefaultZoom,
		FocusZoom:     cfg.FocusZoom,
		FlyToZoom:     cfg.FlyToZoom,
		BoundsPad:     cfg.BoundsPad,
		DensityWeight: cfg.DensityWeight,
	})
	markers := NewMarkerBuffer()
	density := NewDensityBuffer()
	m.Mount(markers, density)
	return m, markers, density
}

func locatedTicket(id string, severity ticket.Severity, lat, lng float64) ticket.Ticket {
	tk := testTicket(id, severity, testEpoch)
	tk.Location = &ticket.Location{Lat: lat, Lng: lng}
	return tk
}

func TestReconcileEmptyResetsToDefaultView(t *testing.T) {
	m, markers, density := newTestSync()
	density.SetPoints([]mapview.DensityPoint{{Weight: 0.6}})

	camera, empty := m.Reconcile(nil, true)

	assert.True(t, empty)
	assert.Equal(t, mapview.CameraCenter, camera.Kind)
	assert.Equal(t, 3.1390, camera.Center.Lat)
	assert.Equal(t, 101.6869, camera.Center.Lng)
	assert.Equal(t, 12, camera.Zoom)
	assert.Empty(t, markers.Snapshot())
	assert.False(t, density.Active(), "overlay removed, not hidden")
}

func TestReconcileSinglePointCentersAtFocusZoom(t *testing.T) {
	m, markers, _ := newTestSync()

	camera, empty := m.Reconcile([]ticket.Ticket{
		locatedTicket("a", ticket.SeverityHigh, 3.20, 101.70),
	}, false)

	assert.False(t, empty)
	assert.Equal(t, mapview.CameraCenter, camera.Kind)
	assert.Equal(t, 3.20, camera.Center.Lat)
	assert.Equal(t, 14, camera.Zoom)
	require.Len(t, markers.Snapshot(), 1)
	assert.Equal(t, "#D32F2F", markers.Snapshot()[0].Color)
}

func TestReconcileManyPointsFitsPaddedBounds(t *testing.T) {
	m, _, _ := newTestSync()

	camera, empty := m.Reconcile([]ticket.Ticket{
		locatedTicket("a", ticket.SeverityHigh, 3.0, 101.0),
		locatedTicket("b", ticket.SeverityLow, 3.4, 101.8),
	}, false)

	assert.False(t, empty)
	require.Equal(t, mapview.CameraFit, camera.Kind)
	require.NotNil(t, camera.Bounds)

	// Bounds contain every point and carry the 10% padding per side.
	assert.InDelta(t, 3.0-0.04, camera.Bounds.MinLat, 1e-9)
	assert.InDelta(t, 3.4+0.04, camera.Bounds.MaxLat, 1e-9)
	assert.InDelta(t, 101.0-0.08, camera.Bounds.MinLng, 1e-9)
	assert.InDelta(t, 101.8+0.08, camera.Bounds.MaxLng, 1e-9)
}

func TestReconcileBadCoordinatesFallsBackToDefault(t *testing.T) {
	m, _, _ := newTestSync()

	camera, empty := m.Reconcile([]ticket.Ticket{
		locatedTicket("a", ticket.SeverityHigh, math.NaN(), 101.0),
		locatedTicket("b", ticket.SeverityLow, 3.4, 101.8),
	}, false)

	assert.False(t, empty)
	assert.Equal(t, mapview.CameraCenter, camera.Kind)
	assert.Equal(t, 12, camera.Zoom)
}

func TestReconcileSkipsUnlocatedTickets(t *testing.T) {
	m, markers, _ := newTestSync()
	unlocated := testTicket("nowhere", ticket.SeverityHigh, testEpoch)
	unlocated.Location = nil

	camera, empty := m.Reconcile([]ticket.Ticket{unlocated}, false)

	assert.True(t, empty, "no geolocated tickets means the empty state")
	assert.Equal(t, mapview.CameraCenter, camera.Kind)
	assert.Empty(t, markers.Snapshot())
}

func TestReconcileDensityOverlay(t *testing.T) {
	m, _, density := newTestSync()
	tickets := []ticket.Ticket{
		locatedTicket("a", ticket.SeverityHigh, 3.0, 101.0),
		locatedTicket("b", ticket.SeverityLow, 3.4, 101.8),
	}

	m.Reconcile(tickets, true)
	require.True(t, density.Active())
	points := density.Snapshot()
	require.Len(t, points, 2)
	assert.Equal(t, 0.6, points[0].Weight)
	assert.Equal(t, 0.6, points[1].Weight)

	// Toggling off removes the overlay entirely.
	m.Reconcile(tickets, false)
	assert.False(t, density.Active())
	assert.Nil(t, density.Snapshot())
}

func TestReconcileRebuildsMarkersWholesale(t *testing.T) {
	m, markers, _ := newTestSync()

	m.Reconcile([]ticket.Ticket{
		locatedTicket("a", ticket.SeverityHigh, 3.0, 101.0),
		locatedTicket("b", ticket.SeverityLow, 3.4, 101.8),
	}, false)
	require.Len(t, markers.Snapshot(), 2)

	m.Reconcile([]ticket.Ticket{
		locatedTicket("c", ticket.SeverityMedium, 3.2, 101.5),
	}, false)
	got := markers.Snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].TicketID)
	assert.Equal(t, "#F57C00", got[0].Color)
}

func TestMarkerColorUnknownSeverity(t *testing.T) {
	m, markers, _ := newTestSync()
	m.Reconcile([]ticket.Ticket{
		locatedTicket("x", ticket.Severity("critical"), 3.0, 101.0),
	}, false)
	require.Len(t, markers.Snapshot(), 1)
	assert.Equal(t, "#333333", markers.Snapshot()[0].Color)
}

func TestFlyToCamera(t *testing.T) {
	m, _, _ := newTestSync()
	camera := m.FlyTo(locatedTicket("a", ticket.SeverityLow, 3.25, 101.71))
	assert.Equal(t, mapview.CameraCenter, camera.Kind)
	assert.Equal(t, 3.25, camera.Center.Lat)
	assert.Equal(t, 20, camera.Zoom)
}

func TestEngineFlyToSelectsAndFrames(t *testing.T) {
	remote := &stubRemote{tickets: []ticket.Ticket{
		testTicket("a", ticket.SeverityHigh, testEpoch),
		testTicket("b", ticket.SeverityLow, testEpoch),
	}}
	e := newTestEngine(remote)
	defer e.Close()

	require.NoError(t, e.FlyTo("b"))
	v := e.View()
	require.NotNil(t, v.Selected)
	assert.Equal(t, "b", v.Selected.ID)
	assert.Equal(t, 20, v.Map.Camera.Zoom)
}
