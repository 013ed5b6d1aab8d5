package journal

import (
	"time"

	"github.com/jiashen-meow/feelingdiary/internal/model"
)

// Filter selects entries by tag and date. Zero fields match everything.
type Filter struct {
	Tags  []string  // every tag must be present, ignoring case
	From  time.Time // inclusive
	To    time.Time // inclusive
	Limit int
}

// Match reports whether e passes the filter, ignoring Limit.
func (f Filter) Match(e model.Entry) bool {
	for _, tag := range f.Tags {
		if !e.HasTag(tag) {
			return false
		}
	}
	if !f.From.IsZero() && e.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Date.After(f.To) {
		return false
	}
	return true
}

// Apply returns the entries passing f, in their original order.
func (f Filter) Apply(entries []model.Entry) []model.Entry {
	out := []model.Entry{}
	for _, e := range entries {
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Query returns the entries of the collection passing f.
func (m *Manager) Query(f Filter) []model.Entry {
	return f.Apply(m.Entries())
}
