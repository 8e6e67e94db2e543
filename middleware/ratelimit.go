package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginRateLimit applies a per-IP token bucket to the login endpoint so
// credential guessing is throttled. Limits are per process; limiters for
// quiet IPs are never evicted, which is acceptable at this traffic level.
func LoginRateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		lim, ok := limiters[ip]
		if !ok {
			lim = rate.NewLimiter(r, burst)
			limiters[ip] = lim
		}
		mu.Unlock()

		if !lim.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"error":   "rate_limited",
				"message": "too many login attempts, slow down",
			})
			return
		}
		c.Next()
	}
}
