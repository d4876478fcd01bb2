package checkout

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 5, 123_000_000, time.UTC)

	t.Run("Format", func(t *testing.T) {
		got := NewOrderNumber(now, bytes.NewReader([]byte{0x00, 0x2a}))
		assert.Equal(t, "ORD-20250315-103005-123-0042", got)
	})

	t.Run("Exhausted entropy falls back to the clock", func(t *testing.T) {
		got := NewOrderNumber(now, bytes.NewReader(nil))
		parts := strings.Split(got, "-")
		if assert.Len(t, parts, 5) {
			assert.Equal(t, "ORD", parts[0])
			assert.Len(t, parts[4], 4)
		}
	})

	t.Run("Local time is normalized to UTC", func(t *testing.T) {
		ist := time.FixedZone("IST", 5*3600+1800)
		got := NewOrderNumber(now.In(ist), bytes.NewReader([]byte{0x00, 0x01}))
		assert.Equal(t, "ORD-20250315-103005-123-0001", got)
	})

	t.Run("Default entropy", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(NewOrderNumber(now, nil), "ORD-20250315-103005-123-"))
	})
}
