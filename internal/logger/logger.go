// Package logger owns the process-wide zap logger and the request-scoped
// fields attached to it.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "agrimart"

var (
	mu  sync.RWMutex
	log *zap.Logger
)

// New builds a logger for env. Production emits JSON on stdout; anything else
// gets the colored console encoder on stderr. An empty level keeps the
// environment default (info in production, debug otherwise).
func New(env, level string) (*zap.Logger, error) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.InitialFields = map[string]any{"service": serviceName}
	return cfg.Build(zap.AddCaller())
}

// Init installs the global logger. It panics when level is unparseable.
func Init(env, level string) {
	l, err := New(env, level)
	if err != nil {
		panic(err)
	}
	Replace(l)
}

// L returns the global logger, building a default one on first use.
func L() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log, _ = New(os.Getenv("APP_ENV"), "")
		if log == nil {
			log = zap.NewNop()
		}
	}
	return log
}

// Replace swaps the global logger, returning a func that restores the
// previous one. Tests use it with zaptest/observer.
func Replace(l *zap.Logger) (restore func()) {
	mu.Lock()
	prev := log
	log = l
	mu.Unlock()
	return func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	}
}

// Sync flushes logs.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if log != nil {
		_ = log.Sync()
	}
}
