package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RateLimiter is a fixed-window limiter keyed by client IP.
type RateLimiter struct {
	requests map[string]*clientLimit
	now      func() time.Time
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
	limit    int
	window   time.Duration
}

type clientLimit struct {
	count     int
	resetTime time.Time
}

func NewRateLimiter(requestsPerWindow int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string]*clientLimit),
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		limit:    requestsPerWindow,
		window:   window,
	}

	go rl.cleanup()

	return rl
}

// Stop ends the background cleanup and waits for it to exit. It is safe to
// call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}

func (rl *RateLimiter) cleanup() {
	defer close(rl.done)

	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, limit := range rl.requests {
				if now.After(limit.resetTime) {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		rl.mu.Lock()
		now := rl.now()
		limit, exists := rl.requests[clientIP]
		if !exists || now.After(limit.resetTime) {
			limit = &clientLimit{resetTime: now.Add(rl.window)}
			rl.requests[clientIP] = limit
		}

		if limit.count >= rl.limit {
			retryAfter := int(limit.resetTime.Sub(now).Seconds()) + 1
			reset := limit.resetTime.Unix()
			rl.mu.Unlock()

			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			log.Warn().Str("ip", clientIP).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}

		limit.count++
		remaining := rl.limit - limit.count
		reset := limit.resetTime.Unix()
		rl.mu.Unlock()

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		c.Next()
	}
}
