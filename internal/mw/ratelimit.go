package mw

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiters keeps one token bucket per client IP.
type ipLimiters struct {
	mu  sync.RWMutex
	ips map[string]*rate.Limiter
	r   rate.Limit
	b   int
}

func newIPLimiters(r rate.Limit, b int) *ipLimiters {
	return &ipLimiters{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.ips[ip]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, exists = l.ips[ip]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(l.r, l.b)
	l.ips[ip] = limiter
	return limiter
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiters := newIPLimiters(r, b)
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
