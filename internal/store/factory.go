package store

import (
	"fmt"

	"go.uber.org/zap"
)

// NewStore constructs a Store by kind: "memory" or "badger".
// For badger, path is the data directory; for memory, path is ignored.
func NewStore(kind, path string, log *zap.Logger) (Store, error) {
	switch kind {
	case "memory", "mem":
		return NewMemoryStore(), nil
	case "badger":
		if path == "" {
			return nil, fmt.Errorf("data path required for badger store")
		}
		cfg := DefaultBadgerConfig(path)
		cfg.Logger = log
		return OpenBadger(cfg)
	default:
		return nil, fmt.Errorf("unknown store kind: %s", kind)
	}
}
