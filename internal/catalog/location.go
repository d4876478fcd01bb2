package catalog

import (
	"sort"
	"strings"
)

// resolveLocation picks the candidate pool for a normalized spec.
//
// Exact (case-insensitive) location matches win. Only when there are none does
// it fall back to the similar locations, which are then reported back so the
// caller can show a "similar results" notice. The pool keeps catalog order.
func resolveLocation(products []Product, location string) (pool []Product, fallback []string) {
	if location == All {
		return products, []string{}
	}

	for _, p := range products {
		if strings.EqualFold(p.Location, location) {
			pool = append(pool, p)
		}
	}
	if len(pool) > 0 {
		return pool, []string{}
	}

	fallback = SimilarLocations(products, location, MaxSimilarLocations)
	if len(fallback) == 0 {
		return nil, []string{}
	}

	wanted := make(map[string]struct{}, len(fallback))
	for _, loc := range fallback {
		wanted[loc] = struct{}{}
	}
	for _, p := range products {
		if _, ok := wanted[p.Location]; ok {
			pool = append(pool, p)
		}
	}
	return pool, fallback
}

// SimilarLocations returns the distinct catalog locations whose lower-cased
// form contains the lower-cased query, sorted lexicographically and capped at
// limit (limit <= 0 means no cap). An empty query or the All sentinel yields
// nothing.
func SimilarLocations(products []Product, query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || query == strings.ToLower(All) {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		if p.Location == "" {
			continue
		}
		if _, dup := seen[p.Location]; dup {
			continue
		}
		seen[p.Location] = struct{}{}
		if strings.Contains(strings.ToLower(p.Location), query) {
			out = append(out, p.Location)
		}
	}

	sort.Strings(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Locations returns every distinct non-empty location in the catalog, sorted.
func Locations(products []Product) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		if p.Location == "" {
			continue
		}
		if _, dup := seen[p.Location]; !dup {
			seen[p.Location] = struct{}{}
			out = append(out, p.Location)
		}
	}
	sort.Strings(out)
	return out
}
