package category

import (
	"strings"

	"agrimart-be/internal/catalog"
)

// Category is a top-level crop group such as Cereals or Spices.
type Category struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Subcategories []*Subcategory `json:"subcategories"`
}

// Subcategory is a crop within a category, listed in Position order, with
// the named varieties sellers may tag products with.
type Subcategory struct {
	ID         string   `json:"id"`
	CategoryID string   `json:"categoryId"`
	Name       string   `json:"name"`
	Position   int      `json:"position"`
	Varieties  []string `json:"varieties"`
}

// HasVariety reports whether v is one of the subcategory's varieties,
// ignoring case.
func (s *Subcategory) HasVariety(v string) bool {
	for _, known := range s.Varieties {
		if strings.EqualFold(known, v) {
			return true
		}
	}
	return false
}

// Flatten turns a taxonomy into category filter values: the All sentinel,
// then each category followed by its subcategories.
func Flatten(categories []*Category) []string {
	out := []string{catalog.All}
	for _, c := range categories {
		out = append(out, c.Name)
		for _, sc := range c.Subcategories {
			out = append(out, sc.Name)
		}
	}
	return out
}
