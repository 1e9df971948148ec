package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// clientLimiter holds one client's token bucket and the last time it
// was used, for stale-entry eviction.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces per-IP request limits with a separate budget per
// endpoint group, so credential endpoints can run on a much tighter
// budget than token reads. Buckets are keyed by (group, client IP) and
// share one eviction loop.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewRateLimiter creates a rate limiter with no groups registered.
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{clients: make(map[string]*clientLimiter)}
	go rl.cleanupLoop()
	return rl
}

// Group returns middleware enforcing the given budget for one endpoint
// group. Clients hitting different groups draw from different buckets.
func (rl *RateLimiter) Group(name string, r rate.Limit, burst int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.allow(name+"|"+c.RealIP(), r, burst) {
				retryAfter := max(int(1.0/float64(r)), 1)
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(key string, r rate.Limit, burst int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(r, burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

// cleanupLoop evicts buckets idle for more than 5 minutes.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(3 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for key, cl := range rl.clients {
			if time.Since(cl.lastSeen) > 5*time.Minute {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}
