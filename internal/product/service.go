package product

import (
	"context"
	"fmt"
	"sync/atomic"

	"agrimart-be/internal/catalog"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/metrics"
	"agrimart-be/internal/validation"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const DefaultCacheSize = 256

type Service interface {
	Reload(ctx context.Context) error
	Query(ctx context.Context, spec catalog.QuerySpec) catalog.QueryResult
	GetByID(ctx context.Context, id int64) (catalog.Product, error)
	Facets(ctx context.Context) catalog.FacetSummary
	SimilarLocations(ctx context.Context, query string) []string
	Create(ctx context.Context, input NewProductInput) (catalog.Product, error)
}

type cacheKey struct {
	version uint64
	spec    catalog.QuerySpec
}

type facetEntry struct {
	version uint64
	summary catalog.FacetSummary
}

type service struct {
	src      Source
	snapshot *Snapshot
	results  *lru.Cache[cacheKey, catalog.QueryResult]
	facets   atomic.Pointer[facetEntry]
}

// NewService builds a catalog service over src. The catalog is empty until
// Reload succeeds. cacheSize <= 0 uses DefaultCacheSize.
func NewService(src Source, cacheSize int) Service {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	results, err := lru.New[cacheKey, catalog.QueryResult](cacheSize)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &service{
		src:      src,
		snapshot: NewSnapshot(nil),
		results:  results,
	}
}

func (s *service) Reload(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Reload"),
	)

	products, err := s.src.LoadCatalog(ctx)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return err
	}

	version := s.snapshot.Replace(products)
	s.results.Purge()

	log.Info("catalog reloaded", zap.Int("count", len(products)), zap.Uint64("version", version))
	return nil
}

func (s *service) Query(ctx context.Context, spec catalog.QuerySpec) catalog.QueryResult {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Query"),
	)

	timer := metrics.StartTimer()
	spec = catalog.Normalize(spec)
	products, version := s.snapshot.Load()
	key := cacheKey{version: version, spec: spec}

	res, hit := s.results.Get(key)
	if hit {
		metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
	} else {
		metrics.CatalogCacheHits.WithLabelValues("miss").Inc()
		res = catalog.Query(products, spec)
		s.results.Add(key, res)
	}

	metrics.CatalogQueries.WithLabelValues(string(res.Spec.SortKey)).Inc()
	if res.UsedFallback() {
		metrics.CatalogFallbacks.Inc()
	}
	d := timer.ObserveDuration(metrics.CatalogQueryDuration)

	log.Debug("query evaluated",
		zap.String("search", spec.SearchText),
		zap.String("category", spec.Category),
		zap.String("location", spec.Location),
		zap.String("sort", string(res.Spec.SortKey)),
		zap.Int("page", res.Page),
		zap.Int("total_matched", res.TotalMatched),
		zap.Strings("fallback_locations", res.UsedFallbackLocations),
		zap.Bool("cache_hit", hit),
		zap.Duration("duration", d),
	)

	return cloneResult(res)
}

func (s *service) GetByID(ctx context.Context, id int64) (catalog.Product, error) {
	p, ok := s.snapshot.Get(id)
	if !ok {
		logger.FromCtx(ctx).Debug("product not in catalog", zap.Int64("product_id", id))
		return catalog.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (s *service) Facets(ctx context.Context) catalog.FacetSummary {
	products, version := s.snapshot.Load()
	if e := s.facets.Load(); e != nil && e.version == version {
		return e.summary
	}

	summary := catalog.Facets(products)
	s.facets.Store(&facetEntry{version: version, summary: summary})
	return summary
}

func (s *service) SimilarLocations(ctx context.Context, query string) []string {
	products, _ := s.snapshot.Load()
	return catalog.SimilarLocations(products, query, catalog.MaxSimilarLocations)
}

func (s *service) Create(ctx context.Context, input NewProductInput) (catalog.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	repo, ok := s.src.(Repository)
	if !ok {
		return catalog.Product{}, ErrReadOnlyCatalog
	}

	if err := validation.Struct(input); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return catalog.Product{}, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	p, err := repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return catalog.Product{}, err
	}

	if err := s.Reload(ctx); err != nil {
		return catalog.Product{}, err
	}

	log.Info("product created", zap.Int64("product_id", p.ID))
	return p, nil
}

// cloneResult detaches the cached slices from what callers receive.
func cloneResult(r catalog.QueryResult) catalog.QueryResult {
	items := make([]catalog.Product, len(r.Items))
	copy(items, r.Items)
	r.Items = items

	fallback := make([]string, len(r.UsedFallbackLocations))
	copy(fallback, r.UsedFallbackLocations)
	r.UsedFallbackLocations = fallback
	return r
}
