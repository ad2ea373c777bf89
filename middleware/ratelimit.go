package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/contactrelay/common"
	"github.com/joshu-sajeev/contactrelay/internal/config"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out a token bucket per client IP. Each bucket holds
// requests tokens and refills one every per/requests.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	requests  int
	per       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(requests int, per time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		requests: requests,
		per:      per,
		now:      time.Now,
	}
}

// Allow reports whether ip may make another request now.
func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	v, ok := r.visitors[ip]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Every(r.per/time.Duration(r.requests)), r.requests),
		}
		r.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for a full window; they would be full again anyway.
func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.per {
		return
	}
	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) >= r.per {
			delete(r.visitors, ip)
		}
	}
	r.lastSweep = now
}

// Limit rejects requests over the limit with 429.
func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			c.Error(common.Errf(http.StatusTooManyRequests, "%s", config.MsgTooManyRequest))
			c.Abort()
			return
		}
		c.Next()
	}
}
