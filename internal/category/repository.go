package category

import (
	"context"
	"database/sql"
	"fmt"

	"agrimart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultLimit = int32(20)

type Repository interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error)
	GetSubcategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string][]*Subcategory, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func paging(limit, page *int32) (int32, int32, int32) {
	finalLimit := defaultLimit
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}
	return finalLimit, finalPage, (finalPage - 1) * finalLimit
}

func (r *repository) GetCategories(
	ctx context.Context,
	filter *string,
	limit *int32,
	page *int32,
) ([]*Category, int64, error) {

	// ---------- DEFAULTS ----------
	finalLimit, finalPage, finalOffset := paging(limit, page)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCategories"),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
	)

	// ---------- FILTER ----------
	where := ""
	args := []interface{}{}
	if filter != nil && *filter != "" {
		where = fmt.Sprintf(" WHERE c.name ILIKE $%d", len(args)+1)
		args = append(args, "%"+*filter+"%")
	}

	// ---------- COUNT ----------
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM category c"+where, args...).Scan(&total); err != nil {
		log.Error("DB count failed GetCategories", zap.Error(err))
		return nil, 0, err
	}

	// ---------- DATA ----------
	query := "SELECT c.id, c.name FROM category c" + where + " ORDER BY c.name ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	log.Debug("Executing GetCategories query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	categories := make([]*Category, 0, finalLimit)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, 0, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *repository) GetSubcategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string][]*Subcategory, error) {
	out := make(map[string][]*Subcategory, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT s.id, s.category_id, s.name, s.position, s.varieties
		FROM subcategories s
		WHERE s.category_id = ANY($1)
		ORDER BY s.category_id, s.position, s.name`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(categoryIDs))
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed GetSubcategoriesByIDs", zap.Error(err))
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Position, pq.Array(&s.Varieties)); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if s.Varieties == nil {
			s.Varieties = []string{}
		}
		out[s.CategoryID] = append(out[s.CategoryID], &s)
	}

	return out, rows.Err()
}
