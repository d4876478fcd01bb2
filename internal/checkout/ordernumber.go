package checkout

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

// NewOrderNumber formats ORD-YYYYMMDD-HHMMSS-mmm-NNNN where NNNN is read
// from entropy (crypto/rand when nil).
func NewOrderNumber(now time.Time, entropy io.Reader) string {
	now = now.UTC()
	if entropy == nil {
		entropy = rand.Reader
	}

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(entropy, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("ORD-%s-%03d-%04d", datePart, millis, n.Int64())
}
