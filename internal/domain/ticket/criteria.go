package ticket

import (
	"time"
)

// DateLayout is the calendar-date format used by filter bounds.
const DateLayout = "2006-01-02"

// Criteria defines the selection predicate for the derived view. Categories,
// severities and statuses are membership sets; From/To are inclusive
// calendar-date bounds. An inverted range yields an empty result rather than
// an error.
type Criteria struct {
	Categories []Category `json:"categories"`
	Severities []Severity `json:"severities"`
	Statuses   []Status   `json:"statuses"`
	From       string     `json:"from"`
	To         string     `json:"to"`
}

// DefaultCriteria selects everything in the last 30 days ending today.
func DefaultCriteria(now time.Time) Criteria {
	return Criteria{
		Categories: append([]Category(nil), Categories...),
		Severities: append([]Severity(nil), Severities...),
		Statuses:   append([]Status(nil), Statuses...),
		From:       now.AddDate(0, 0, -30).Format(DateLayout),
		To:         now.Format(DateLayout),
	}
}

// Clone returns an independent copy, so applied criteria never alias the
// pending instance's slices.
func (c Criteria) Clone() Criteria {
	out := c
	out.Categories = append([]Category(nil), c.Categories...)
	out.Severities = append([]Severity(nil), c.Severities...)
	out.Statuses = append([]Status(nil), c.Statuses...)
	return out
}

// Matches reports whether a ticket satisfies the criteria. Tickets without a
// usable creation timestamp are excluded unconditionally; enum values outside
// the selected sets are excluded, never admitted by default.
func (c Criteria) Matches(t Ticket) bool {
	if t.CreatedAt.IsZero() {
		return false
	}
	if from, ok := parseDate(c.From); ok && t.CreatedAt.Before(from) {
		return false
	}
	if to, ok := parseDate(c.To); ok && !t.CreatedAt.Before(to.AddDate(0, 0, 1)) {
		return false
	}
	return containsCategory(c.Categories, t.Category) &&
		containsSeverity(c.Severities, t.Severity) &&
		containsStatus(c.Statuses, t.Status)
}

// parseDate interprets a calendar-date bound as local start of day. An empty
// or unparseable bound leaves that side of the range open.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func containsCategory(set []Category, v Category) bool {
	for _, c := range set {
		if c == v {
			return true
		}
	}
	return false
}

func containsSeverity(set []Severity, v Severity) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsStatus(set []Status, v Status) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
