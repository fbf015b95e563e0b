package middleware

import (
	"net/http"
	"sync"
	"time"

	"bitwise74/contacts-api/internal/httperr"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiterConfig struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
	TTL               time.Duration
}

type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	config   RateLimiterConfig
}

func (r *rateLimiter) getVisitor(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, exists := r.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(r.config.RequestsPerMinute)),
			r.config.RequestsPerMinute,
		)
		r.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (r *rateLimiter) cleanupVisitors() {
	for {
		time.Sleep(r.config.CleanupInterval)
		r.mu.Lock()
		for ip, v := range r.visitors {
			if time.Since(v.lastSeen) > r.config.TTL {
				delete(r.visitors, ip)
			}
		}
		r.mu.Unlock()
	}
}

// RateLimiterMiddleware limits each remote address to
// RequestsPerMinute requests. Exceeding the limit yields 429.
func RateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 5
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = time.Minute
	}
	if config.TTL == 0 {
		config.TTL = 3 * time.Minute
	}

	r := &rateLimiter{
		visitors: make(map[string]*visitor),
		config:   config,
	}

	go r.cleanupVisitors()

	return func(c *gin.Context) {
		limiter := r.getVisitor(c.ClientIP())

		if !limiter.Allow() {
			httperr.Abort(c, http.StatusTooManyRequests, "Too many requests")
			return
		}

		c.Next()
	}
}
