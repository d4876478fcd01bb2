package catalog

import "math"

// FacetSummary describes the filter options a listing page can offer for a
// catalog: the dropdown values, the observed price bounds and availability.
type FacetSummary struct {
	Categories    []string   `json:"categories"`
	Subcategories []string   `json:"subcategories"`
	Locations     []string   `json:"locations"`
	PriceBounds   PriceRange `json:"priceBounds"`
	InStock       int        `json:"inStock"`
	OutOfStock    int        `json:"outOfStock"`
	Organic       int        `json:"organic"`
	Total         int        `json:"total"`
}

// Facets summarizes products. Categories starts with the All sentinel and
// keeps first-seen catalog order, as do subcategories; locations are sorted.
func Facets(products []Product) FacetSummary {
	out := FacetSummary{
		Categories:    []string{All},
		Subcategories: []string{},
		Locations:     Locations(products),
		Total:         len(products),
	}

	seenCat := make(map[string]struct{})
	seenSub := make(map[string]struct{})
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, p := range products {
		if p.Category != "" {
			if _, dup := seenCat[p.Category]; !dup {
				seenCat[p.Category] = struct{}{}
				out.Categories = append(out.Categories, p.Category)
			}
		}
		if p.Subcategory != "" {
			if _, dup := seenSub[p.Subcategory]; !dup {
				seenSub[p.Subcategory] = struct{}{}
				out.Subcategories = append(out.Subcategories, p.Subcategory)
			}
		}

		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)

		if p.InStock() {
			out.InStock++
		} else {
			out.OutOfStock++
		}
		if p.IsOrganic {
			out.Organic++
		}
	}

	if len(products) > 0 {
		out.PriceBounds = PriceRange{Min: lo, Max: hi}
	}
	return out
}
