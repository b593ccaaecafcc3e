package flight

import (
	"sort"
	"strings"
)

var knownSortKeys = map[SortKey]struct{}{
	SortPriceAsc:          {},
	SortPriceDesc:         {},
	SortDurationAsc:       {},
	SortDurationDesc:      {},
	SortDepartureTimeAsc:  {},
	SortDepartureTimeDesc: {},
}

// ResolveSortKey maps a requested key onto a supported one. fallback is true
// when the request was empty or unknown and DefaultSortKey was chosen instead.
func ResolveSortKey(raw SortKey) (key SortKey, fallback bool) {
	normalized := SortKey(strings.ToLower(strings.TrimSpace(string(raw))))
	if _, ok := knownSortKeys[normalized]; ok {
		return normalized, false
	}
	return DefaultSortKey, true
}

// SortResults returns a sorted copy of rows. Ties keep their input order.
// key must already be resolved; anything unknown sorts as DefaultSortKey.
func SortResults(rows []SearchResult, key SortKey) []SearchResult {
	sorted := make([]SearchResult, len(rows))
	copy(sorted, rows)

	if len(sorted) <= 1 {
		return sorted
	}

	var less func(a, b SearchResult) bool
	switch key {
	case SortPriceDesc:
		less = func(a, b SearchResult) bool { return a.Price > b.Price }
	case SortDurationAsc:
		less = func(a, b SearchResult) bool { return a.DurationMinutes < b.DurationMinutes }
	case SortDurationDesc:
		less = func(a, b SearchResult) bool { return a.DurationMinutes > b.DurationMinutes }
	case SortDepartureTimeAsc:
		less = func(a, b SearchResult) bool { return a.DepartureTime.Before(b.DepartureTime) }
	case SortDepartureTimeDesc:
		less = func(a, b SearchResult) bool { return a.DepartureTime.After(b.DepartureTime) }
	default:
		less = func(a, b SearchResult) bool { return a.Price < b.Price }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	return sorted
}
