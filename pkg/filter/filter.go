package filter

import (
	"strings"
	"time"

	"github.com/ntu-info/emogo-backend-chaudharyinder/entities"
)

// State is the dashboard's display-filter state: a case-insensitive
// substring over the note, an exact mood, and inclusive date bounds. It is
// applied to an already-fetched batch, never pushed into the store query.
type State struct {
	Note string
	Mood string
	From *time.Time
	To   *time.Time
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Matches reports whether a single record passes the filter. A record with
// no note never matches a non-empty note query. A record whose timestamp
// does not parse is excluded by either date bound when that bound is set,
// but included when no bound is set at all.
func Matches(record *entities.Record, state State) bool {
	if state.Note != "" {
		if record.Note == nil {
			return false
		}
		if !strings.Contains(strings.ToLower(*record.Note), strings.ToLower(state.Note)) {
			return false
		}
	}

	if state.Mood != "" && record.Mood != state.Mood {
		return false
	}

	if state.From != nil || state.To != nil {
		t, ok := parseTimestamp(record.Timestamp)
		if !ok {
			return false
		}
		if state.From != nil && t.Before(*state.From) {
			return false
		}
		if state.To != nil && t.After(*state.To) {
			return false
		}
	}

	return true
}

// Apply returns the subsequence of records matching the filter, preserving
// input order.
func Apply(records []*entities.Record, state State) []*entities.Record {
	matched := make([]*entities.Record, 0, len(records))
	for _, record := range records {
		if Matches(record, state) {
			matched = append(matched, record)
		}
	}
	return matched
}
