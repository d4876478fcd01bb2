package category

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success_NoFilter", func(t *testing.T) {
		limit := int32(10)
		page := int32(1)

		// 1. Count Query
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM category c").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		// 2. Data Query
		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow("cereals", "Cereals").
			AddRow("pulses", "Pulses")
		mock.ExpectQuery("SELECT c.id, c.name FROM category c ORDER BY c.name ASC LIMIT \\$1 OFFSET \\$2").
			WithArgs(int32(10), int32(0)).
			WillReturnRows(rows)

		res, total, err := repo.GetCategories(context.Background(), nil, &limit, &page)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, res, 2)
		assert.Equal(t, "Cereals", res[0].Name)
	})

	t.Run("Success_WithFilter", func(t *testing.T) {
		filter := "ce"
		page := int32(2)

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM category c WHERE c.name ILIKE \\$1").
			WithArgs("%ce%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))
		mock.ExpectQuery("WHERE c.name ILIKE \\$1 ORDER BY c.name ASC LIMIT \\$2 OFFSET \\$3").
			WithArgs("%ce%", int32(20), int32(20)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("spices", "Spices"))

		res, total, err := repo.GetCategories(context.Background(), &filter, nil, &page)
		assert.NoError(t, err)
		assert.Equal(t, int64(21), total)
		assert.Len(t, res, 1)
	})

	t.Run("CountError", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("db error"))

		_, _, err := repo.GetCategories(context.Background(), nil, nil, nil)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetSubcategoriesByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "category_id", "name", "position", "varieties"}).
			AddRow("s1", "cereals", "Wheat", 0, "{Sharbati,Durum}").
			AddRow("s2", "cereals", "Millets", 1, nil).
			AddRow("s3", "pulses", "Toor Dal (Pigeon Pea)", 0, "{Maruti}")

		mock.ExpectQuery("FROM subcategories s").
			WithArgs(pq.Array([]string{"cereals", "pulses"})).
			WillReturnRows(rows)

		res, err := repo.GetSubcategoriesByIDs(context.Background(), []string{"cereals", "pulses"})
		require.NoError(t, err)
		require.Len(t, res["cereals"], 2)
		assert.Equal(t, []string{"Sharbati", "Durum"}, res["cereals"][0].Varieties)
		assert.Equal(t, []string{}, res["cereals"][1].Varieties)
		assert.Equal(t, 1, res["cereals"][1].Position)
		assert.Equal(t, "Maruti", res["pulses"][0].Varieties[0])
	})

	t.Run("NoIDs", func(t *testing.T) {
		res, err := repo.GetSubcategoriesByIDs(context.Background(), nil)
		assert.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("QueryError", func(t *testing.T) {
		mock.ExpectQuery("FROM subcategories s").WillReturnError(errors.New("db error"))

		_, err := repo.GetSubcategoriesByIDs(context.Background(), []string{"x"})
		assert.Error(t, err)
	})
}
