package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	b, err := OpenBadger(InMemoryBadgerConfig())
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"badger": b,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStore_GetSet(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "cart:1")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "cart:1", []byte(`{"items":[]}`)))
			got, err := s.Get(ctx, "cart:1")
			require.NoError(t, err)
			assert.Equal(t, `{"items":[]}`, string(got))

			require.NoError(t, s.Set(ctx, "cart:1", []byte(`{"items":[1]}`)))
			got, err = s.Get(ctx, "cart:1")
			require.NoError(t, err)
			assert.Equal(t, `{"items":[1]}`, string(got))
		})
	}
}

func TestStore_ValuesAreCopied(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			v := []byte("abc")
			require.NoError(t, s.Set(ctx, "k", v))
			v[0] = 'x'

			got, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "abc", string(got))
		})
	}
}

func TestStore_CanceledContext(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := s.Get(ctx, "k")
			assert.True(t, errors.Is(err, context.Canceled))
			assert.ErrorIs(t, s.Set(ctx, "k", []byte("v")), context.Canceled)
		})
	}
}

func TestStore_Subscribe(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ch, cancel := s.Subscribe("orders:7")
			defer cancel()

			require.NoError(t, s.Set(ctx, "orders:7", []byte("one")))
			select {
			case v := <-ch:
				assert.Equal(t, "one", string(v))
			case <-time.After(time.Second):
				t.Fatal("no value delivered")
			}

			// other keys are not delivered
			require.NoError(t, s.Set(ctx, "orders:8", []byte("other")))
			select {
			case v := <-ch:
				t.Fatalf("unexpected value %q", v)
			default:
			}
		})
	}
}

func TestStore_SlowSubscriberSeesLatest(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ch, cancel := s.Subscribe("k")
	defer cancel()

	for i := 0; i < 10; i++ {
		require.NoError(t, s.Set(ctx, "k", []byte(fmt.Sprint(i))))
	}

	assert.Equal(t, "9", string(<-ch))
}

func TestStore_CancelClosesChannel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := NewMemoryStore()
	ch, cancel := s.Subscribe("k")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range ch {
		}
	}()

	cancel()
	cancel()
	wg.Wait()

	require.NoError(t, s.Set(context.Background(), "k", []byte("after")))
}

func TestStore_CloseClosesSubscribers(t *testing.T) {
	s := NewMemoryStore()
	ch, cancel := s.Subscribe("k")

	require.NoError(t, s.Close())
	_, open := <-ch
	assert.False(t, open)

	cancel()
}

func TestStore_ConcurrentWriters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		_, err := s.Get(ctx, fmt.Sprintf("k%d", i))
		assert.NoError(t, err)
	}
}

func TestNewStore(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		s, err := NewStore("memory", "", nil)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, s)
	})

	t.Run("Badger on disk", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewStore("badger", dir, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer s.Close()

		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "k", []byte("persisted")))
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "persisted", string(got))
	})

	t.Run("Badger without path", func(t *testing.T) {
		_, err := NewStore("badger", "", nil)
		assert.Error(t, err)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		_, err := NewStore("redis", "", nil)
		assert.EqualError(t, err, "unknown store kind: redis")
	})
}
