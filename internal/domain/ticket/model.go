package ticket

import (
	"time"
)

// Category classifies the kind of city issue a ticket reports
type Category string

const (
	CategoryPothole     Category = "pothole"
	CategoryStreetlight Category = "streetlight"
	CategorySignage     Category = "signage"
	CategoryTrash       Category = "trash"
	CategoryDrainage    Category = "drainage"
	CategoryOther       Category = "other"
)

// Categories lists the canonical categories in display order
var Categories = []Category{
	CategoryPothole,
	CategoryStreetlight,
	CategorySignage,
	CategoryTrash,
	CategoryDrainage,
	CategoryOther,
}

// Severity indicates how urgent a ticket is
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Severities lists the canonical severities from most to least urgent
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// Rank returns the sort rank of a severity. Unknown values rank last.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// Status is a step in a ticket's lifecycle
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in_progress"
	StatusFixed      Status = "fixed"
)

// Statuses lists the canonical lifecycle in order
var Statuses = []Status{StatusSubmitted, StatusInProgress, StatusFixed}

// Location is a geographic point
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Ticket represents a single reported city issue
type Ticket struct {
	ID          string    `json:"id"`
	Category    Category  `json:"category"`
	Severity    Severity  `json:"severity"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	Location    *Location `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	SubmittedBy string    `json:"submittedBy,omitempty"`
	Address     string    `json:"address,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// HasLocation reports whether the ticket can be placed on a map
func (t Ticket) HasLocation() bool {
	return t.Location != nil
}

// StatusPatch is a partial update applied locally when the remote store
// confirms a mutation without returning the updated record.
type StatusPatch struct {
	Status    Status
	UpdatedAt time.Time
}
