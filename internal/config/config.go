package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceSeed     = "seed"
	CatalogSourcePostgres = "postgres"
	CatalogSourceFile     = "file"
)

type Config struct {
	AppEnv   string
	AppPort  string
	LogLevel string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	CatalogSource  string
	CatalogFile    string
	QueryCacheSize int

	StoreKind string
	StorePath string

	JWTSecret string

	// CORSOrigin is the storefront origin allowed to call the API.
	CORSOrigin string
	// InternalSecret lets trusted services use the internal rate-limit tier.
	InternalSecret string

	PaymentLatency time.Duration
	PaymentTimeout time.Duration
	PredictLatency time.Duration
}

// LoadConfig reads .env (if present) and the process environment. Database
// settings are only required when the catalog is served from postgres.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getenv("APP_ENV", "development"),
		AppPort:        getenv("APP_PORT", "8080"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBSSLMode:      getenv("DB_SSLMODE", "disable"),
		CatalogSource:  getenv("CATALOG_SOURCE", CatalogSourceSeed),
		CatalogFile:    os.Getenv("CATALOG_FILE"),
		StoreKind:      getenv("STORE_KIND", "memory"),
		StorePath:      getenv("STORE_PATH", "data/store"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		CORSOrigin:     getenv("CORS_ORIGIN", "http://localhost:3000"),
		InternalSecret: os.Getenv("INTERNAL_SECRET_KEY"),
	}

	var err error
	if cfg.QueryCacheSize, err = getInt("QUERY_CACHE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.PaymentLatency, err = getDuration("PAYMENT_LATENCY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.PaymentTimeout, err = getDuration("PAYMENT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.PredictLatency, err = getDuration("PREDICT_LATENCY", 1500*time.Millisecond); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CatalogSource {
	case CatalogSourceSeed:
	case CatalogSourceFile:
		if c.CatalogFile == "" {
			return errors.New("CATALOG_FILE is required when CATALOG_SOURCE=file")
		}
	case CatalogSourcePostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return errors.New("DB_HOST, DB_USER and DB_NAME are required when CATALOG_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE: %s", c.CatalogSource)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// UsesPostgres reports whether a database connection is needed. Users and
// the taxonomy follow the catalog onto postgres.
func (c *Config) UsesPostgres() bool {
	return c.CatalogSource == CatalogSourcePostgres
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
