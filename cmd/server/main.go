package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agrimart-be/internal/cart"
	"agrimart-be/internal/category"
	"agrimart-be/internal/checkout"
	"agrimart-be/internal/config"
	"agrimart-be/internal/db"
	"agrimart-be/internal/farmer"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/middleware"
	"agrimart-be/internal/pricetrend"
	"agrimart-be/internal/product"
	"agrimart-be/internal/store"
	"agrimart-be/internal/transport"
	"agrimart-be/internal/user"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

// app is the wired service graph.
type app struct {
	store    store.Store
	db       *sql.DB
	products product.Service
	handler  *transport.Handler
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.L().Warn("close store", zap.Error(err))
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	st, err := store.NewStore(cfg.StoreKind, cfg.StorePath, logger.L())
	if err != nil {
		return nil, err
	}
	a := &app{store: st}

	var (
		source   product.Source
		catRepo  category.Repository
		userRepo user.Repository
	)
	if cfg.UsesPostgres() {
		if a.db, err = db.NewDatabase(ctx, cfg); err != nil {
			a.Close()
			return nil, err
		}
		source = product.NewRepository(a.db)
		catRepo = category.NewRepository(a.db)
		userRepo = user.NewRepository(a.db)
	} else {
		source = product.SeedSource{}
		if cfg.CatalogSource == config.CatalogSourceFile {
			source = product.FileSource{Path: cfg.CatalogFile}
		}
		if catRepo, err = category.NewSeedRepository(); err != nil {
			a.Close()
			return nil, err
		}
		userRepo = user.NewStoreRepository(st)
	}

	a.products = product.NewService(source, cfg.QueryCacheSize)
	if err := a.products.Reload(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("initial catalog load: %w", err)
	}

	tokens, err := user.NewTokenIssuer(cfg.JWTSecret, user.DefaultTokenTTL)
	if err != nil {
		a.Close()
		return nil, err
	}

	farmers, err := farmer.SeedDirectory()
	if err != nil {
		a.Close()
		return nil, err
	}
	trends, err := pricetrend.SeedTrends()
	if err != nil {
		a.Close()
		return nil, err
	}

	carts := cart.NewService(st, a.products)
	a.handler = &transport.Handler{
		Products:   a.products,
		Categories: category.NewService(catRepo),
		Carts:      carts,
		Checkout: checkout.NewService(st, carts, checkout.NewSimulatedGateway(cfg.PaymentLatency), checkout.Options{
			PaymentTimeout: cfg.PaymentTimeout,
		}),
		Users:   user.NewService(userRepo, tokens),
		Farmers: farmer.NewService(farmers),
		Trends: pricetrend.NewService(trends, pricetrend.NewPredictor(trends, pricetrend.PredictorOptions{
			Latency: cfg.PredictLatency,
		})),
		TokenTTL:      user.DefaultTokenTTL,
		SecureCookies: cfg.AppEnv == "production",
		RequestReload: func(ctx context.Context) error {
			return product.RequestReload(ctx, st)
		},
	}
	return a, nil
}

func setupRouter(h *transport.Handler, cfg *config.Config, limiter *middleware.Limiter) http.Handler {
	return transport.NewRouter(h, transport.RouterOptions{
		Tokens:     h.Users,
		Limiter:    limiter,
		CORSOrigin: cfg.CORSOrigin,
		Metrics:    promhttp.Handler(),
	})
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.L()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	limiter := middleware.NewLimiter(cfg.InternalSecret)
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupRouter(a.handler, cfg, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("catalog", cfg.CatalogSource))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		limiter.Run(gctx)
		return nil
	})

	g.Go(func() error {
		product.WatchReloads(gctx, a.store, a.products)
		return nil
	})

	// SIGHUP reloads the catalog without a restart
	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-hup:
				if err := product.RequestReload(gctx, a.store); err != nil {
					log.Warn("publish reload", zap.Error(err))
				}
			}
		}
	})

	return g.Wait()
}
