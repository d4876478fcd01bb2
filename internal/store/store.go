// Package store is the key-value persistence contract used for carts, orders
// and checkout sessions, with in-memory and badger backends.
package store

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("key not found")

// Store persists opaque values by key. Subscribers receive every value
// written to their key after they subscribed; a slow subscriber only ever
// sees the most recent value and never blocks Set.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Subscribe(key string) (<-chan []byte, func())
	Close() error
}

type broadcaster struct {
	mu   sync.Mutex
	subs map[string]map[chan []byte]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[string]map[chan []byte]struct{})}
}

func (b *broadcaster) subscribe(key string) (<-chan []byte, func()) {
	ch := make(chan []byte, 1)

	b.mu.Lock()
	if b.subs[key] == nil {
		b.subs[key] = make(map[chan []byte]struct{})
	}
	b.subs[key][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if set, ok := b.subs[key]; ok {
				if _, live := set[ch]; live {
					delete(set, ch)
					close(ch)
				}
				if len(set) == 0 {
					delete(b.subs, key)
				}
			}
		})
	}
	return ch, cancel
}

func (b *broadcaster) publish(key string, value []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[key] {
		v := clone(value)
		select {
		case ch <- v:
		default:
			// drop the stale value so the latest one fits
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

func (b *broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, set := range b.subs {
		for ch := range set {
			close(ch)
		}
		delete(b.subs, key)
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
