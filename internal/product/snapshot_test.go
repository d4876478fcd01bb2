package product

import (
	"testing"

	"agrimart-be/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	src := sampleCatalog()
	s := NewSnapshot(src)

	products, v0 := s.Load()
	assert.Len(t, products, 4)

	// the snapshot owns a copy
	src[0].Name = "changed"
	p, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "Sona Masoori Rice", p.Name)

	v1 := s.Replace([]catalog.Product{{ID: 9, Name: "Jowar"}})
	assert.Equal(t, v0+1, v1)

	_, ok = s.Get(1)
	assert.False(t, ok)
	p, ok = s.Get(9)
	assert.True(t, ok)
	assert.Equal(t, "Jowar", p.Name)
}

func TestSnapshot_ZeroValue(t *testing.T) {
	var s Snapshot
	products, v := s.Load()
	assert.Nil(t, products)
	assert.Zero(t, v)

	_, ok := s.Get(1)
	assert.False(t, ok)
}
