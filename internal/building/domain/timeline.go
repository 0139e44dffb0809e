package domain

import (
	"sort"
	"strings"
	"time"
)

// MaxTimelineEvents bounds the report timeline.
const MaxTimelineEvents = 100

// TimelineEvent is one dated entry of the building history.
type TimelineEvent struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseDate parses the date formats found in the datasets.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OnOrAfter reports whether date parses and is not before cutoff.
func OnOrAfter(date string, cutoff time.Time) bool {
	t, ok := ParseDate(date)
	return ok && !t.Before(cutoff)
}

// SortByDateDesc stable-sorts items newest first. Unparseable dates sort
// last.
func SortByDateDesc[T any](items []T, date func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, iok := ParseDate(date(items[i]))
		tj, jok := ParseDate(date(items[j]))
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
}

// BuildTimeline drops undated events, orders the rest newest first and keeps
// at most limit entries.
func BuildTimeline(events []TimelineEvent, limit int) []TimelineEvent {
	out := Filter(events, func(e TimelineEvent) bool { return e.Date != "" })
	SortByDateDesc(out, func(e TimelineEvent) string { return e.Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
