package product

import (
	"sync"
	"sync/atomic"

	"agrimart-be/internal/catalog"
)

type snapshotState struct {
	products []catalog.Product
	byID     map[int64]int
	version  uint64
}

// Snapshot publishes an immutable catalog to concurrent readers. Replace
// swaps the whole slice; readers see either the old or the new catalog.
type Snapshot struct {
	mu  sync.Mutex
	cur atomic.Pointer[snapshotState]
}

func NewSnapshot(products []catalog.Product) *Snapshot {
	s := &Snapshot{}
	s.Replace(products)
	return s
}

// Replace installs a copy of products and returns the new version.
func (s *Snapshot) Replace(products []catalog.Product) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &snapshotState{
		products: make([]catalog.Product, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	copy(next.products, products)
	for i, p := range next.products {
		next.byID[p.ID] = i
	}
	if prev := s.cur.Load(); prev != nil {
		next.version = prev.version + 1
	}

	s.cur.Store(next)
	return next.version
}

// Load returns the current catalog and its version. The slice must not be
// modified.
func (s *Snapshot) Load() ([]catalog.Product, uint64) {
	st := s.cur.Load()
	if st == nil {
		return nil, 0
	}
	return st.products, st.version
}

func (s *Snapshot) Get(id int64) (catalog.Product, bool) {
	st := s.cur.Load()
	if st == nil {
		return catalog.Product{}, false
	}
	i, ok := st.byID[id]
	if !ok {
		return catalog.Product{}, false
	}
	return st.products[i], true
}
