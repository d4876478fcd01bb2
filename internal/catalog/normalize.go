package catalog

import (
	"math"
	"strings"
)

const maxRating = 5

// Normalize is the single canonical repair step for a QuerySpec. Query calls
// it first, so callers never need to; it is exported so transports can echo
// the effective filters and so memo caches can key on the repaired value.
//
// Rules:
//   - Page and PageSize below 1 become 1.
//   - NaN price bounds become 0 (min) and +Inf (max).
//   - min > max is swapped, then negative bounds are clamped to 0.
//   - MinRating is clamped into [0, 5]; NaN becomes 0.
//   - Empty or any-case "all" category/location become the All sentinel.
//   - SearchText is trimmed; an unknown SortKey becomes featured.
func Normalize(spec QuerySpec) QuerySpec {
	out := spec

	if out.PageSize < 1 {
		out.PageSize = 1
	}
	if out.Page < 1 {
		out.Page = 1
	}

	out.PriceRange = normalizePriceRange(out.PriceRange)

	switch {
	case math.IsNaN(out.MinRating), out.MinRating < 0:
		out.MinRating = 0
	case out.MinRating > maxRating:
		out.MinRating = maxRating
	}

	out.Category = normalizeFacet(out.Category)
	out.Location = normalizeFacet(out.Location)
	out.SearchText = strings.TrimSpace(out.SearchText)

	if !out.SortKey.Valid() {
		out.SortKey = ParseSortKey(string(out.SortKey))
	}

	return out
}

func normalizePriceRange(r PriceRange) PriceRange {
	if math.IsNaN(r.Min) || math.IsInf(r.Min, 0) {
		r.Min = 0
	}
	if math.IsNaN(r.Max) {
		r.Max = math.Inf(1)
	}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if r.Min < 0 {
		r.Min = 0
	}
	if r.Max < 0 {
		r.Max = 0
	}
	return r
}

func normalizeFacet(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, All) {
		return All
	}
	return v
}
