package ticket

import (
	"strings"
	"time"
)

// categorySynonyms maps backend-specific category names to canonical ones.
// Names not in the table pass through unchanged; filters simply never admit
// values outside the canonical set.
var categorySynonyms = map[string]Category{
	"broken_streetlight": CategoryStreetlight,
	"garbage":            CategoryTrash,
	"pothole":            CategoryPothole,
	"streetlight":        CategoryStreetlight,
	"signage":            CategorySignage,
	"trash":              CategoryTrash,
	"drainage":           CategoryDrainage,
	"other":              CategoryOther,
}

// statusFromBackend maps the remote store's status vocabulary to the
// canonical lifecycle. Unknown values pass through so the operator can still
// see and cycle statuses the remote introduces later.
var statusFromBackend = map[string]Status{
	"New":         StatusSubmitted,
	"In Progress": StatusInProgress,
	"Fixed":       StatusFixed,
	"submitted":   StatusSubmitted,
	"in_progress": StatusInProgress,
	"fixed":       StatusFixed,
}

// statusToBackend is the reverse of statusFromBackend for canonical values.
var statusToBackend = map[Status]string{
	StatusSubmitted:  "New",
	StatusInProgress: "In Progress",
	StatusFixed:      "Fixed",
}

// NormalizeCategory applies the backend synonym table. Empty maps to other.
func NormalizeCategory(raw string) Category {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CategoryOther
	}
	if c, ok := categorySynonyms[strings.ToLower(raw)]; ok {
		return c
	}
	return Category(raw)
}

// NormalizeSeverity lowercases the backend value and defaults missing or
// not-applicable severities to low.
func NormalizeSeverity(raw string) Severity {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "n/a" {
		return SeverityLow
	}
	return Severity(raw)
}

// NormalizeStatus maps the backend status vocabulary to canonical values,
// defaulting missing statuses to submitted.
func NormalizeStatus(raw string) Status {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StatusSubmitted
	}
	if s, ok := statusFromBackend[raw]; ok {
		return s
	}
	return Status(raw)
}

// BackendStatus translates a canonical status to the remote store's
// vocabulary. Non-canonical values are sent as-is.
func BackendStatus(s Status) string {
	if v, ok := statusToBackend[s]; ok {
		return v
	}
	return string(s)
}

// Record is a raw ticket as the remote store serves it. Field names follow
// the backend; a few fields accept both old and new spellings.
type Record struct {
	TicketID    string     `json:"ticket_id"`
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	UserName    string     `json:"userName"`
	Category    string     `json:"category"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Address     string     `json:"address"`
	ImagePath   string     `json:"image_path"`
	ImageURL    string     `json:"image_url"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	CreatedAtV2 *time.Time `json:"createdAt"`
	UpdatedAtV2 *time.Time `json:"updatedAt"`
}

// Normalize converts a backend record into a canonical Ticket.
func (r Record) Normalize() Ticket {
	t := Ticket{
		ID:          firstNonEmpty(r.TicketID, r.ID),
		Category:    NormalizeCategory(r.Category),
		Severity:    NormalizeSeverity(r.Severity),
		Status:      NormalizeStatus(r.Status),
		Notes:       firstNonEmpty(r.Notes, r.Description),
		SubmittedBy: r.UserName,
		Address:     r.Address,
		ImageURL:    firstNonEmpty(r.ImageURL, r.ImagePath),
	}
	if r.Latitude != nil && r.Longitude != nil {
		t.Location = &Location{Lat: *r.Latitude, Lng: *r.Longitude}
	}
	if ts := firstTime(r.CreatedAt, r.CreatedAtV2); ts != nil {
		t.CreatedAt = *ts
	}
	if ts := firstTime(r.UpdatedAt, r.UpdatedAtV2); ts != nil {
		t.UpdatedAt = *ts
	}
	return t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstTime(values ...*time.Time) *time.Time {
	for _, v := range values {
		if v != nil && !v.IsZero() {
			return v
		}
	}
	return nil
}
