package engine

import (
	"fixmate/internal/domain/mapview"
)

// MarkerBuffer renders the marker layer into a serializable slice pushed to
// dashboard clients over the view stream. It implements mapview.MarkerLayer.
type MarkerBuffer struct {
	markers []mapview.Marker
}

// NewMarkerBuffer returns an empty marker buffer
func NewMarkerBuffer() *MarkerBuffer {
	return &MarkerBuffer{}
}

// Clear removes every marker
func (b *MarkerBuffer) Clear() {
	b.markers = b.markers[:0]
}

// Add places one marker
func (b *MarkerBuffer) Add(m mapview.Marker) {
	b.markers = append(b.markers, m)
}

// Snapshot returns a copy of the current marker set
func (b *MarkerBuffer) Snapshot() []mapview.Marker {
	return append([]mapview.Marker(nil), b.markers...)
}

// DensityBuffer renders the density overlay into a serializable point set.
// It implements mapview.DensityLayer.
type DensityBuffer struct {
	points []mapview.DensityPoint
	active bool
}

// NewDensityBuffer returns a removed (inactive) density buffer
func NewDensityBuffer() *DensityBuffer {
	return &DensityBuffer{}
}

// SetPoints replaces the point set wholesale and activates the overlay
func (b *DensityBuffer) SetPoints(points []mapview.DensityPoint) {
	b.points = append(b.points[:0], points...)
	b.active = true
}

// Remove tears the overlay down
func (b *DensityBuffer) Remove() {
	b.points = nil
	b.active = false
}

// Active reports whether the overlay currently exists
func (b *DensityBuffer) Active() bool {
	return b.active
}

// Snapshot returns the overlay's points, or nil when the overlay is removed
func (b *DensityBuffer) Snapshot() []mapview.DensityPoint {
	if !b.active {
		return nil
	}
	return append([]mapview.DensityPoint(nil), b.points...)
}
