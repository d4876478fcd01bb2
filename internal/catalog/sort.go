package catalog

import (
	"cmp"
	"slices"
	"strings"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
	SortName      SortKey = "name"
)

// sortAliases maps the labels used by older listing pages onto the
// canonical keys.
var sortAliases = map[string]SortKey{
	"top-rated": SortRating,
	"name-asc":  SortName,
}

// comparators is the sort table. Every comparator returns 0 for ties so the
// stable sort keeps catalog order.
var comparators = map[SortKey]func(a, b Product) int{
	SortFeatured: func(a, b Product) int {
		if c := cmpBoolDesc(a.IsBestSeller, b.IsBestSeller); c != 0 {
			return c
		}
		return cmp.Compare(b.Rating, a.Rating)
	},
	SortPriceAsc: func(a, b Product) int {
		return cmp.Compare(a.Price, b.Price)
	},
	SortPriceDesc: func(a, b Product) int {
		return cmp.Compare(b.Price, a.Price)
	},
	SortRating: func(a, b Product) int {
		return cmp.Compare(b.Rating, a.Rating)
	},
	// Creation time first; ids only break ties between equal timestamps,
	// which covers catalogs that carry no timestamps at all.
	SortNewest: func(a, b Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	},
	SortName: func(a, b Product) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
}

// SortKeys lists the canonical keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortFeatured, SortPriceAsc, SortPriceDesc, SortRating, SortNewest, SortName}
}

// Valid reports whether k is one of the canonical keys.
func (k SortKey) Valid() bool {
	_, ok := comparators[k]
	return ok
}

// ParseSortKey resolves a user supplied key, accepting legacy aliases.
// Anything unknown falls back to SortFeatured.
func ParseSortKey(s string) SortKey {
	s = strings.ToLower(strings.TrimSpace(s))
	if k := SortKey(s); k.Valid() {
		return k
	}
	if k, ok := sortAliases[s]; ok {
		return k
	}
	return SortFeatured
}

// sortProducts stable-sorts products in place.
func sortProducts(products []Product, key SortKey) {
	less, ok := comparators[key]
	if !ok {
		less = comparators[SortFeatured]
	}
	slices.SortStableFunc(products, less)
}

func cmpBoolDesc(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}
