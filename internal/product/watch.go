package product

import (
	"context"
	"strconv"
	"time"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/store"

	"go.uber.org/zap"
)

// ReloadKey is the store key whose writes ask every catalog service sharing
// the store to reload.
const ReloadKey = "catalog:reload"

// RequestReload publishes a reload request.
func RequestReload(ctx context.Context, st store.Store) error {
	return st.Set(ctx, ReloadKey, []byte(strconv.FormatInt(time.Now().UnixNano(), 10)))
}

// WatchReloads reloads svc whenever ReloadKey is written, until ctx is done.
// A failed reload keeps the previous catalog.
func WatchReloads(ctx context.Context, st store.Store, svc Service) {
	ch, cancel := st.Subscribe(ReloadKey)
	defer cancel()

	log := logger.FromCtx(ctx).With(zap.String("layer", "watcher"))
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			if err := svc.Reload(ctx); err != nil {
				log.Warn("catalog reload failed, serving previous snapshot", zap.Error(err))
			}
		}
	}
}
