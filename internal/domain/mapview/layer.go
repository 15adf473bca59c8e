package mapview

import (
	"fixmate/internal/domain/ticket"
)

// Marker is a single map pin for a geolocated ticket
type Marker struct {
	TicketID string          `json:"ticketId"`
	Location ticket.Location `json:"location"`
	Color    string          `json:"color"`
	Severity ticket.Severity `json:"severity"`
	Popup    string          `json:"popup,omitempty"`
}

// DensityPoint is one weighted contribution to the density overlay
type DensityPoint struct {
	Location ticket.Location `json:"location"`
	Weight   float64         `json:"weight"`
}

// Bounds is a geographic bounding box
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// Camera framing modes
const (
	CameraCenter = "center"
	CameraFit    = "fit"
)

// Camera describes where the map should look. Kind selects between a fixed
// center/zoom and a fit-to-bounds framing.
type Camera struct {
	Kind   string          `json:"kind"`
	Center ticket.Location `json:"center,omitempty"`
	Zoom   int             `json:"zoom,omitempty"`
	Bounds *Bounds         `json:"bounds,omitempty"`
}

// MarkerLayer is the imperative marker handle owned by the synchronizer.
// Implementations are acquired on view mount, released on unmount, and only
// ever mutated through the synchronizer's reconciliation entry point.
type MarkerLayer interface {
	// Clear removes every marker from the layer
	Clear()

	// Add places one marker on the layer
	Add(m Marker)
}

// DensityLayer is the imperative density-overlay handle
type DensityLayer interface {
	// SetPoints replaces the overlay's point set wholesale
	SetPoints(points []DensityPoint)

	// Remove tears the overlay down entirely (not merely hides it)
	Remove()
}
