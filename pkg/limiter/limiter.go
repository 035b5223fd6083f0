package limiter

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Visitors keeps one token bucket per key. Buckets idle for longer than ttl
// are dropped on the next Cleanup.
type Visitors struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	ttl      time.Duration
}

func NewVisitors(rps int, burst int, ttl time.Duration) *Visitors {
	return &Visitors{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
	}
}

func (v *Visitors) Allow(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	vis, ok := v.visitors[key]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.visitors[key] = vis
	}
	vis.lastSeen = time.Now()

	return vis.limiter.Allow()
}

func (v *Visitors) Cleanup(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for key, vis := range v.visitors {
		if now.Sub(vis.lastSeen) > v.ttl {
			delete(v.visitors, key)
		}
	}
}

// Limit rate limits requests per client ip. Idle buckets are swept until
// ctx is done.
func Limit(ctx context.Context, rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = time.Minute
	}
	visitors := NewVisitors(rps, burst, ttl)

	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				visitors.Cleanup(now)
			}
		}
	}()

	return func(c *gin.Context) {
		if !visitors.Allow(c.ClientIP()) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
