package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agrimart-be/internal/catalog"
	"agrimart-be/internal/logger"

	"go.uber.org/zap"
)

// Source supplies the full catalog for a snapshot.
type Source interface {
	LoadCatalog(ctx context.Context) ([]catalog.Product, error)
}

type Repository interface {
	Source
	GetByID(ctx context.Context, id int64) (catalog.Product, error)
	Create(ctx context.Context, input NewProductInput) (catalog.Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, name, description, category, subcategory, variety,
	price, unit, min_order_quantity, stock_quantity, location, seller,
	rating, is_organic, is_best_seller, image_url, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (catalog.Product, error) {
	var (
		p                            catalog.Product
		subcategory, variety, seller sql.NullString
		imageURL                     sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &subcategory, &variety,
		&p.Price, &p.Unit, &p.MinOrderQuantity, &p.StockQuantity, &p.Location, &seller,
		&p.Rating, &p.IsOrganic, &p.IsBestSeller, &imageURL, &p.CreatedAt,
	)
	p.Subcategory = subcategory.String
	p.Variety = variety.String
	p.Seller = seller.String
	p.ImageURL = imageURL.String
	return p, err
}

func (r *repository) LoadCatalog(ctx context.Context) ([]catalog.Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"), zap.String("method", "LoadCatalog"))

	rows, err := r.db.QueryContext(ctx, "SELECT"+productColumns+" FROM products ORDER BY id")
	if err != nil {
		log.Error("DB query failed LoadCatalog", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCatalog, err)
	}
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedLoadCatalog, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCatalog, err)
	}

	log.Debug("catalog loaded", zap.Int("count", len(products)))
	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (catalog.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT"+productColumns+" FROM products WHERE id = $1", id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Product{}, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed GetByID", zap.Int64("product_id", id), zap.Error(err))
		return catalog.Product{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (catalog.Product, error) {
	p := input.toProduct()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			name, description, category, subcategory, variety,
			price, unit, min_order_quantity, stock_quantity, location, seller,
			is_organic, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`,
		p.Name, p.Description, p.Category, p.Subcategory, p.Variety,
		p.Price, p.Unit, p.MinOrderQuantity, p.StockQuantity, p.Location, p.Seller,
		p.IsOrganic, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("DB insert failed Create", zap.Error(err))
		return catalog.Product{}, fmt.Errorf("%w: %v", ErrFailedCreateProduct, err)
	}
	return p, nil
}
