package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/technical/internal/domain/dto"
)

// client tracks one IP's requests inside the current window.
type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is an in-memory fixed-window counter keyed by client IP.
// It is per-process; multiple instances each keep their own counts.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// allow records a request from ip and reports whether it is within the limit.
func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) >= rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		rl.evict(now)
		return true
	}
	cl.count++
	return cl.count <= rl.limit
}

// evict drops clients whose window has expired so the map does not grow without bound.
func (rl *rateLimiter) evict(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.windowStart) >= rl.window {
			delete(rl.clients, ip)
		}
	}
}

// RateLimiter limits each client IP to `limit` requests per `window`.
// A limit <= 0 disables limiting.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"error": "rate limit exceeded", "timestamp": "..."}
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := newRateLimiter(limit, window)
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
