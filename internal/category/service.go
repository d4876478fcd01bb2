package category

import (
	"context"

	"agrimart-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the crop taxonomy.
type Service interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error)
	Options(ctx context.Context) ([]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetCategories retrieves a page of categories with their subcategories
func (s *service) GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	// 1. Get parent categories
	categories, total, err := s.repo.GetCategories(ctx, filter, limit, page)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, 0, err
	}

	if len(categories) == 0 {
		log.Info("no categories found")
		return []*Category{}, total, nil
	}

	// 2. Fetch all subcategories for the page in one query
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}

	subs, err := s.repo.GetSubcategoriesByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to get subcategories by ids", zap.Error(err))
		return nil, 0, err
	}

	// 3. Attach subcategories to their parent categories
	for _, c := range categories {
		c.Subcategories = subs[c.ID]
		if c.Subcategories == nil {
			c.Subcategories = []*Subcategory{}
		}
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, total, nil
}

// Options returns the category dropdown values for the whole taxonomy.
func (s *service) Options(ctx context.Context) ([]string, error) {
	limit := int32(1000)
	categories, _, err := s.GetCategories(ctx, nil, &limit, nil)
	if err != nil {
		return nil, err
	}
	return Flatten(categories), nil
}
