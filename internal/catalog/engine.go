package catalog

// Query runs spec against products and returns one page of results.
//
// The steps run in a fixed order: location resolution, filter predicates,
// stable sort, pagination. Query never fails and never mutates products; any
// malformed spec is repaired by Normalize first.
func Query(products []Product, spec QuerySpec) QueryResult {
	spec = Normalize(spec)

	pool, fallback := resolveLocation(products, spec.Location)

	preds := predicates(spec)
	matched := make([]Product, 0, len(pool))
	for _, p := range pool {
		if matchAll(p, preds) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, spec.SortKey)

	total := len(matched)
	totalPages := PageCount(total, spec.PageSize)
	if spec.Page > totalPages {
		spec.Page = totalPages
	}

	start := (spec.Page - 1) * spec.PageSize
	end := min(start+spec.PageSize, total)
	items := make([]Product, end-start)
	copy(items, matched[start:end])

	return QueryResult{
		Items:                 items,
		TotalMatched:          total,
		TotalPages:            totalPages,
		Page:                  spec.Page,
		PageSize:              spec.PageSize,
		UsedFallbackLocations: fallback,
		Spec:                  spec,
	}
}

// PageCount is ceil(total/pageSize) with a floor of one page.
func PageCount(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (total + pageSize - 1) / pageSize
	return max(1, pages)
}
