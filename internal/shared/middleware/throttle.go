package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"engagement-backend/internal/shared/response"
)

// Throttle is a per-process, per-origin token bucket in front of anonymous
// write endpoints. It only smooths bursts; the review cooldown is enforced by
// the abuse guard against storage.
type Throttle struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewThrottle(rps float64, burst int) *Throttle {
	return &Throttle{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Allow consumes one token for key.
func (t *Throttle) Allow(key string) bool {
	t.mu.Lock()
	v, exists := t.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(t.rps, t.burst)}
		t.visitors[key] = v
	}
	v.lastSeen = time.Now()
	t.mu.Unlock()

	return v.limiter.Allow()
}

// Sweep drops visitors idle for longer than idle.
func (t *Throttle) Sweep(idle time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-idle)
	for key, v := range t.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(t.visitors, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle visitors until ctx is done.
func (t *Throttle) Run(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Sweep(idle)
		}
	}
}

// Middleware rejects requests over the burst budget with 429.
func (t *Throttle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.Allow(GetOrigin(c)) {
			response.TooManyRequests(c, "Too many requests. Please wait.")
			c.Abort()
			return
		}
		c.Next()
	}
}
