package product

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{
	"id", "name", "description", "category", "subcategory", "variety",
	"price", "unit", "min_order_quantity", "stock_quantity", "location", "seller",
	"rating", "is_organic", "is_best_seller", "image_url", "created_at",
}

func TestRepository_LoadCatalog(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows(productRowColumns).
			AddRow(1, "Sona Masoori Rice", "desc", "Cereals", "Rice Varieties", "Sona Masoori",
				45.5, "kg", 10.0, 500, "Andhra Pradesh", "Sri Lakshmi Farms",
				4.5, true, true, "/img.jpg", created).
			AddRow(2, "Toor Dal", "desc", "Pulses", nil, nil,
				120.0, "kg", 5.0, 0, "Maharashtra", nil,
				4.3, false, false, nil, created)

		mock.ExpectQuery(`(?s)SELECT .* FROM products ORDER BY id`).WillReturnRows(rows)

		got, err := repo.LoadCatalog(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Rice Varieties", got[0].Subcategory)
		assert.True(t, got[0].IsBestSeller)
		assert.Equal(t, "", got[1].Subcategory)
		assert.False(t, got[1].InStock())
		assert.Equal(t, created, got[1].CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty table", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .* FROM products`).WillReturnRows(sqlmock.NewRows(productRowColumns))

		got, err := repo.LoadCatalog(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .*`).WillReturnError(errors.New("db error"))

		_, err = repo.LoadCatalog(ctx)
		assert.ErrorIs(t, err, ErrFailedLoadCatalog)
	})

	t.Run("ScanError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows([]string{"id"}).AddRow(1)
		mock.ExpectQuery(`(?s)SELECT .*`).WillReturnRows(rows)

		_, err = repo.LoadCatalog(ctx)
		assert.ErrorIs(t, err, ErrFailedLoadCatalog)
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		rows := sqlmock.NewRows(productRowColumns).
			AddRow(10, "Black Pepper", "desc", "Spices", "Pepper", "Black Pepper",
				480.0, "kg", 1.0, 40, "Kerala", "Kerala Spices",
				4.7, true, true, "/img.jpg", time.Now())
		mock.ExpectQuery(`(?s)SELECT .* FROM products WHERE id = \$1`).WithArgs(int64(10)).WillReturnRows(rows)

		p, err := repo.GetByID(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "Black Pepper", p.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)SELECT .*`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

		_, err = repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	input := NewProductInput{
		Name: "Ragi", Category: "Cereals", Subcategory: "Millets", Price: 38,
		Unit: "kg", MinOrderQuantity: 10, StockQuantity: 250, Location: "Karnataka",
	}

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		now := time.Now()
		mock.ExpectQuery(`(?s)INSERT INTO products .* RETURNING id, created_at`).
			WithArgs("Ragi", "", "Cereals", "Millets", "", 38.0, "kg", 10.0, 250, "Karnataka", "", false, "").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(19, now))

		p, err := repo.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, int64(19), p.ID)
		assert.Equal(t, now, p.CreatedAt)
	})

	t.Run("InsertError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`(?s)INSERT INTO products`).WillReturnError(errors.New("constraint"))

		_, err = repo.Create(ctx, input)
		assert.ErrorIs(t, err, ErrFailedCreateProduct)
	})
}
