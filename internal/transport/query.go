package transport

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"agrimart-be/internal/catalog"
)

/* ---------- QUERY PARAMETERS ---------- */

// ParseQuerySpec reads a listing request. Absent parameters keep their
// defaults; values that do not parse are rejected rather than guessed.
// Range and paging values that parse but are out of bounds are repaired by
// the engine.
func ParseQuerySpec(q url.Values) (catalog.QuerySpec, error) {
	spec := catalog.DefaultQuerySpec()

	spec.SearchText = q.Get("search")
	if v := q.Get("category"); v != "" {
		spec.Category = v
	}
	if v := q.Get("location"); v != "" {
		spec.Location = v
	}
	if v := q.Get("sort"); v != "" {
		spec.SortKey = catalog.ParseSortKey(v)
	}

	var err error
	if spec.PriceRange.Min, err = floatParam(q, "minPrice", spec.PriceRange.Min); err != nil {
		return spec, err
	}
	if spec.PriceRange.Max, err = floatParam(q, "maxPrice", spec.PriceRange.Max); err != nil {
		return spec, err
	}
	if spec.MinRating, err = floatParam(q, "minRating", spec.MinRating); err != nil {
		return spec, err
	}
	if spec.RequireInStock, err = boolParam(q, "inStock"); err != nil {
		return spec, err
	}
	if spec.RequireOrganic, err = boolParam(q, "organic"); err != nil {
		return spec, err
	}
	if spec.Page, err = intParam(q, "page", spec.Page); err != nil {
		return spec, err
	}
	if spec.PageSize, err = intParam(q, "pageSize", spec.PageSize); err != nil {
		return spec, err
	}
	return spec, nil
}

func floatParam(q url.Values, key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errBadRequest, key)
	}
	return f, nil
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, key)
	}
	return n, nil
}

func boolParam(q url.Values, key string) (bool, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", errBadRequest, key)
	}
	return b, nil
}

func int32Param(q url.Values, key string) (*int32, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", errBadRequest, key)
	}
	out := int32(n)
	return &out, nil
}

func idParam(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", errBadRequest, name)
	}
	return id, nil
}
