package domain

import (
	"math"
	"sort"
)

// Count is one entry of an ordered frequency table.
type Count struct {
	Key   string
	Count int
}

// Share is a category count with its rounded percentage of the total.
type Share struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Pct      int    `json:"pct"`
}

// Tally counts items by key. Items whose key is "" are skipped.
func Tally[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, item := range items {
		if k := key(item); k != "" {
			out[k]++
		}
	}
	return out
}

// CountWhere counts items matching pred.
func CountWhere[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Filter returns the items matching pred.
func Filter[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Sum adds value over items.
func Sum[T any](items []T, value func(T) float64) float64 {
	total := 0.0
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Map applies fn to the first limit items (all items when limit <= 0).
func Map[T, U any](items []T, limit int, fn func(T) U) []U {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]U, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// Year returns the leading four characters of a date string, or "".
func Year(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// TopCounts orders a frequency table by descending count, then key, and
// keeps at most n entries (all when n <= 0).
func TopCounts(counts map[string]int, n int) []Count {
	out := make([]Count, 0, len(counts))
	for k, c := range counts {
		out = append(out, Count{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Breakdown converts a frequency table to the top n shares. Percentages are
// 0 when the table is empty.
func Breakdown(counts map[string]int, n int) []Share {
	total := 0
	for _, c := range counts {
		total += c
	}
	top := TopCounts(counts, n)
	out := make([]Share, 0, len(top))
	for _, c := range top {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(c.Count) / float64(total) * 100))
		}
		out = append(out, Share{Category: c.Key, Count: c.Count, Pct: pct})
	}
	return out
}
