package transport

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"testing"

	"agrimart-be/internal/cart"
	"agrimart-be/internal/catalog"
	"agrimart-be/internal/checkout"
	"agrimart-be/internal/product"
	"agrimart-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuerySpec(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		spec, err := ParseQuerySpec(url.Values{})
		require.NoError(t, err)
		assert.Equal(t, catalog.DefaultQuerySpec(), spec)
	})

	t.Run("All parameters", func(t *testing.T) {
		q := url.Values{
			"search":    {"rice"},
			"category":  {"Cereals"},
			"location":  {"Punjab"},
			"minPrice":  {"10"},
			"maxPrice":  {"90.5"},
			"minRating": {"4"},
			"inStock":   {"true"},
			"organic":   {"1"},
			"sort":      {"price-desc"},
			"page":      {"2"},
			"pageSize":  {"6"},
		}
		spec, err := ParseQuerySpec(q)
		require.NoError(t, err)

		assert.Equal(t, catalog.QuerySpec{
			SearchText:     "rice",
			Category:       "Cereals",
			Location:       "Punjab",
			PriceRange:     catalog.PriceRange{Min: 10, Max: 90.5},
			MinRating:      4,
			RequireInStock: true,
			RequireOrganic: true,
			SortKey:        catalog.SortPriceDesc,
			Page:           2,
			PageSize:       6,
		}, spec)
	})

	t.Run("Max price absent stays unbounded", func(t *testing.T) {
		spec, err := ParseQuerySpec(url.Values{"minPrice": {"50"}})
		require.NoError(t, err)
		assert.True(t, math.IsInf(spec.PriceRange.Max, 1))
	})

	t.Run("Out of range values are left for the engine", func(t *testing.T) {
		spec, err := ParseQuerySpec(url.Values{"page": {"-3"}, "minRating": {"9"}})
		require.NoError(t, err)
		assert.Equal(t, -3, spec.Page)
		assert.Equal(t, 9.0, spec.MinRating)
	})

	bad := []string{"minPrice", "maxPrice", "minRating", "inStock", "organic", "page", "pageSize"}
	for _, key := range bad {
		t.Run(fmt.Sprintf("Malformed %s", key), func(t *testing.T) {
			_, err := ParseQuerySpec(url.Values{key: {"lots"}})
			assert.ErrorIs(t, err, errBadRequest)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: qty", cart.ErrBelowMinOrder), http.StatusBadRequest},
		{user.ErrInvalidCredentials, http.StatusUnauthorized},
		{checkout.ErrPaymentDeclined, http.StatusPaymentRequired},
		{product.ErrProductNotFound, http.StatusNotFound},
		{user.ErrEmailExists, http.StatusConflict},
		{checkout.ErrInvalidStep, http.StatusConflict},
		{checkout.ErrPaymentTimeout, http.StatusGatewayTimeout},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errForbidden, http.StatusForbidden},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusOf(c.err), c.err.Error())
	}
}
