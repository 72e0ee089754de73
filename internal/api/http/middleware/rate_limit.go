package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/response"
)

// RateLimit rejects requests beyond a process-wide token bucket with 429.
// rps <= 0 disables limiting.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			response.Fail(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
