package middleware

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"agrimart-be/internal/auth"

	"golang.org/x/time/rate"
)

// Tier is a rate-limit policy.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

// Rate Limit Tiers
var (
	// Login, register, payment (Strict)
	TierStrict = Tier{Name: "strict", Limit: rate.Limit(2), Burst: 5}

	// Catalog listing and location suggestions fire on every keystroke
	TierSearch = Tier{Name: "search", Limit: rate.Limit(20), Burst: 40}

	// General (Default)
	TierGeneral = Tier{Name: "general", Limit: rate.Limit(10), Burst: 20}

	// Internal / trusted services
	TierInternal = Tier{Name: "internal", Limit: rate.Limit(100), Burst: 200}
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per caller and tier.
type Limiter struct {
	internalSecret string
	now            func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewLimiter builds a limiter. Requests carrying internalSecret in
// X-Service-Auth use the internal tier; an empty secret disables that tier.
func NewLimiter(internalSecret string) *Limiter {
	return &Limiter{
		internalSecret: internalSecret,
		now:            time.Now,
		visitors:       make(map[string]*visitor),
	}
}

// Run evicts idle visitors until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	t := time.NewTicker(cleanupInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.cleanup()
		}
	}
}

func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
		}
	}
}

// getVisitor retrieves or creates the bucket for key.
func (l *Limiter) getVisitor(key string, tier Tier) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(tier.Limit, tier.Burst)}
		l.visitors[key] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

// Middleware rejects requests over their tier's budget with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Determine Rate Tier
		tier := l.resolveTier(r)

		// 2. Combine identity and tier, e.g. "user:1:strict", so one caller has
		// separate quotas per tier
		key := fmt.Sprintf("%s:%s", identity(r), tier.Name)

		if !l.getVisitor(key, tier).Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func identity(r *http.Request) string {
	if id, ok := auth.IdentityFrom(r.Context()); ok {
		return "user:" + id.OwnerID()
	}
	if deviceID := auth.DeviceID(r); deviceID != "" {
		return "device:" + deviceID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// isInternal compares X-Service-Auth with the configured secret in
// constant time.
func (l *Limiter) isInternal(r *http.Request) bool {
	if l.internalSecret == "" {
		return false
	}
	got := r.Header.Get("X-Service-Auth")
	return subtle.ConstantTimeCompare([]byte(got), []byte(l.internalSecret)) == 1
}

// resolveTier determines which rate limit policy applies to the request.
func (l *Limiter) resolveTier(r *http.Request) Tier {
	if l.isInternal(r) {
		return TierInternal
	}

	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/auth/"),
		strings.HasSuffix(path, "/payment"):
		return TierStrict
	case r.Method == http.MethodGet && (path == "/api/products" || path == "/api/locations/similar"):
		return TierSearch
	}
	return TierGeneral
}
