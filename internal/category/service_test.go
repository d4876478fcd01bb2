package category

import (
	"context"
	"errors"
	"testing"

	"agrimart-be/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error) {
	args := m.Called(ctx, filter, limit, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) GetSubcategoriesByIDs(ctx context.Context, ids []string) (map[string][]*Subcategory, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*Subcategory), args.Error(1)
}

func TestService_GetCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		cats := []*Category{{ID: "cereals", Name: "Cereals"}, {ID: "spices", Name: "Spices"}}
		subs := map[string][]*Subcategory{
			"cereals": {{ID: "s1", CategoryID: "cereals", Name: "Wheat"}},
		}
		repo.On("GetCategories", ctx, (*string)(nil), (*int32)(nil), (*int32)(nil)).Return(cats, int64(2), nil)
		repo.On("GetSubcategoriesByIDs", ctx, []string{"cereals", "spices"}).Return(subs, nil)

		res, total, err := svc.GetCategories(ctx, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, res[0].Subcategories, 1)
		assert.NotNil(t, res[1].Subcategories)
		assert.Empty(t, res[1].Subcategories)
		repo.AssertExpectations(t)
	})

	t.Run("Empty", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetCategories", ctx, mock.Anything, mock.Anything, mock.Anything).Return([]*Category{}, int64(0), nil)

		res, total, err := svc.GetCategories(ctx, nil, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.Zero(t, total)
		repo.AssertNotCalled(t, "GetSubcategoriesByIDs", mock.Anything, mock.Anything)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetCategories", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("db error"))

		_, _, err := svc.GetCategories(ctx, nil, nil, nil)
		assert.Error(t, err)
	})

	t.Run("SubcategoryError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetCategories", ctx, mock.Anything, mock.Anything, mock.Anything).Return([]*Category{{ID: "c"}}, int64(1), nil)
		repo.On("GetSubcategoriesByIDs", ctx, mock.Anything).Return(nil, errors.New("db error"))

		_, _, err := svc.GetCategories(ctx, nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestService_OptionsFromSeed(t *testing.T) {
	repo, err := NewSeedRepository()
	require.NoError(t, err)
	svc := NewService(repo)

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)

	assert.Equal(t, catalog.All, opts[0])
	assert.Equal(t, []string{"Cereals", "Rice Varieties", "Wheat"}, opts[1:4])
	assert.Contains(t, opts, "Toor Dal (Pigeon Pea)")
	assert.Contains(t, opts, "Pepper")
	// 5 categories, 16 subcategories and the sentinel
	assert.Len(t, opts, 22)
}

func TestSeedRepository_GetCategories(t *testing.T) {
	repo, err := NewSeedRepository()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Filter is case-insensitive", func(t *testing.T) {
		filter := "CROPS"
		res, total, err := repo.GetCategories(ctx, &filter, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Cash Crops", res[0].Name)
	})

	t.Run("Pagination", func(t *testing.T) {
		limit, page := int32(2), int32(3)
		res, total, err := repo.GetCategories(ctx, nil, &limit, &page)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, res, 1)
		assert.Equal(t, "Spices", res[0].Name)
	})

	t.Run("Page past the end", func(t *testing.T) {
		page := int32(9)
		res, _, err := repo.GetCategories(ctx, nil, nil, &page)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("Subcategories carry ids and varieties", func(t *testing.T) {
		subs, err := repo.GetSubcategoriesByIDs(ctx, []string{"spices"})
		require.NoError(t, err)
		require.Len(t, subs["spices"], 2)
		assert.Equal(t, "spices-1", subs["spices"][0].ID)
		assert.Equal(t, "spices", subs["spices"][0].CategoryID)
		assert.Contains(t, subs["spices"][0].Varieties, "Byadgi")
		assert.True(t, subs["spices"][0].HasVariety("byadgi"))
		assert.Equal(t, 1, subs["spices"][1].Position)
	})
}

func TestFlatten(t *testing.T) {
	cats := []*Category{
		{Name: "Cereals", Subcategories: []*Subcategory{{Name: "Wheat"}, {Name: "Millets"}}},
		{Name: "Pulses", Subcategories: []*Subcategory{}},
	}
	assert.Equal(t, []string{"All", "Cereals", "Wheat", "Millets", "Pulses"}, Flatten(cats))
	assert.Equal(t, []string{"All"}, Flatten(nil))
}
