// Package catalog implements the storefront's product query engine: free-text
// search, faceted filtering, sorting and pagination over an in-memory catalog.
//
// Every function in this package is pure. Callers own the catalog slice and
// must replace it wholesale rather than mutate it while queries are running.
package catalog

import (
	"encoding/json"
	"math"
	"time"
)

// All is the sentinel for "no filter" on the category and location facets.
const All = "All"

const (
	DefaultPageSize     = 12
	MaxSimilarLocations = 5
)

type Product struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory,omitempty"`
	Variety          string    `json:"variety,omitempty"`
	Price            float64   `json:"price"`
	Unit             string    `json:"unit"`
	MinOrderQuantity float64   `json:"minOrderQuantity"`
	StockQuantity    int       `json:"stockQuantity"`
	Location         string    `json:"location"`
	Seller           string    `json:"seller,omitempty"`
	Rating           float64   `json:"rating"`
	IsOrganic        bool      `json:"isOrganic"`
	IsBestSeller     bool      `json:"isBestSeller"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// InStock reports whether the product can currently be ordered.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// PriceRange is an inclusive [Min, Max] price bound.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type priceRangeJSON struct {
	Min float64  `json:"min"`
	Max *float64 `json:"max"`
}

// MarshalJSON writes an unbounded Max as null.
func (r PriceRange) MarshalJSON() ([]byte, error) {
	out := priceRangeJSON{Min: r.Min}
	if !math.IsInf(r.Max, 1) {
		out.Max = &r.Max
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a null or missing Max as unbounded.
func (r *PriceRange) UnmarshalJSON(b []byte) error {
	var in priceRangeJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	r.Min = in.Min
	r.Max = math.Inf(1)
	if in.Max != nil {
		r.Max = *in.Max
	}
	return nil
}

// Contains reports whether price lies inside the inclusive range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// QuerySpec is the full set of active search, filter, sort and page
// parameters. It is comparable, so it can key a memo cache once normalized.
type QuerySpec struct {
	SearchText     string     `json:"searchText"`
	Category       string     `json:"category"`
	Location       string     `json:"location"`
	PriceRange     PriceRange `json:"priceRange"`
	MinRating      float64    `json:"minRating"`
	RequireInStock bool       `json:"requireInStock"`
	RequireOrganic bool       `json:"requireOrganic"`
	SortKey        SortKey    `json:"sortKey"`
	Page           int        `json:"page"`
	PageSize       int        `json:"pageSize"`
}

// DefaultQuerySpec returns a spec that matches the whole catalog, sorted by
// the featured order, first page.
func DefaultQuerySpec() QuerySpec {
	return QuerySpec{
		Category:   All,
		Location:   All,
		PriceRange: PriceRange{Min: 0, Max: math.Inf(1)},
		SortKey:    SortFeatured,
		Page:       1,
		PageSize:   DefaultPageSize,
	}
}

// QueryResult is the outcome of a single Query call. It is never mutated
// after construction; callers must treat Items as read-only.
type QueryResult struct {
	Items        []Product `json:"items"`
	TotalMatched int       `json:"totalMatched"`
	TotalPages   int       `json:"totalPages"`
	Page         int       `json:"page"`
	PageSize     int       `json:"pageSize"`

	// UsedFallbackLocations lists the similar locations substituted when the
	// requested location had no exact match. Empty otherwise, never nil.
	UsedFallbackLocations []string `json:"usedFallbackLocations"`

	// Spec echoes the normalized filters that produced this result.
	Spec QuerySpec `json:"spec"`
}

// UsedFallback reports whether the result was built from similar locations.
func (r QueryResult) UsedFallback() bool {
	return len(r.UsedFallbackLocations) > 0
}
