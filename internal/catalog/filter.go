package catalog

import "strings"

// predicate reports whether a product passes one facet of the spec.
type predicate func(p Product) bool

// predicates builds the conjunctive filter set for a normalized spec. Facets
// that are switched off are omitted rather than evaluated as always-true.
func predicates(spec QuerySpec) []predicate {
	preds := make([]predicate, 0, 6)

	if spec.SearchText != "" {
		term := strings.ToLower(spec.SearchText)
		preds = append(preds, func(p Product) bool {
			return containsFold(p.Name, term) ||
				containsFold(p.Description, term) ||
				containsFold(p.Variety, term)
		})
	}

	// A single dropdown filters by broad category or narrow subcategory.
	if spec.Category != All {
		category := spec.Category
		preds = append(preds, func(p Product) bool {
			return p.Category == category ||
				(p.Subcategory != "" && p.Subcategory == category)
		})
	}

	priceRange := spec.PriceRange
	preds = append(preds, func(p Product) bool {
		return priceRange.Contains(p.Price)
	})

	if spec.MinRating > 0 {
		minRating := spec.MinRating
		preds = append(preds, func(p Product) bool {
			return p.Rating >= minRating
		})
	}

	if spec.RequireInStock {
		preds = append(preds, Product.InStock)
	}

	if spec.RequireOrganic {
		preds = append(preds, func(p Product) bool {
			return p.IsOrganic
		})
	}

	return preds
}

// Matches reports whether p passes every filter facet of spec. Location is
// not a predicate: it is resolved beforehand into the candidate pool.
func Matches(p Product, spec QuerySpec) bool {
	return matchAll(p, predicates(Normalize(spec)))
}

func matchAll(p Product, preds []predicate) bool {
	for _, ok := range preds {
		if !ok(p) {
			return false
		}
	}
	return true
}

// containsFold reports whether lowerTerm occurs in s, ignoring case.
// lowerTerm must already be lower-cased.
func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
