package category

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed seed/categories.json
var seedCategories []byte

type seedRepository struct {
	categories []*Category
}

// NewSeedRepository serves the bundled crop taxonomy.
func NewSeedRepository() (Repository, error) {
	var cats []*Category
	if err := json.Unmarshal(seedCategories, &cats); err != nil {
		return nil, fmt.Errorf("decode seed taxonomy: %w", err)
	}
	for _, c := range cats {
		for i, s := range c.Subcategories {
			s.ID = fmt.Sprintf("%s-%d", c.ID, i+1)
			s.CategoryID = c.ID
			s.Position = i
		}
	}
	return &seedRepository{categories: cats}, nil
}

func (r *seedRepository) GetCategories(_ context.Context, filter *string, limit, page *int32) ([]*Category, int64, error) {
	matched := make([]*Category, 0, len(r.categories))
	for _, c := range r.categories {
		if filter != nil && *filter != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*filter)) {
			continue
		}
		// subcategories are attached by the service
		matched = append(matched, &Category{ID: c.ID, Name: c.Name})
	}

	finalLimit, _, finalOffset := paging(limit, page)
	total := int64(len(matched))
	if int64(finalOffset) >= total {
		return []*Category{}, total, nil
	}
	end := min(int64(finalOffset+finalLimit), total)
	return matched[finalOffset:end], total, nil
}

func (r *seedRepository) GetSubcategoriesByIDs(_ context.Context, categoryIDs []string) (map[string][]*Subcategory, error) {
	out := make(map[string][]*Subcategory, len(categoryIDs))
	for _, id := range categoryIDs {
		for _, c := range r.categories {
			if c.ID == id {
				out[id] = c.Subcategories
			}
		}
	}
	return out, nil
}
