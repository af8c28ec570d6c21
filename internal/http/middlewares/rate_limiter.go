package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter allows limit requests per window for each caller, refilling
// evenly across the window. Callers are keyed by their authenticated address
// when auth ran first, otherwise by IP. Callers idle for a full window are
// forgotten, which is the same as starting them with a full bucket.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	var (
		mu        sync.Mutex
		visitors  = make(map[string]*visitor)
		lastSweep = time.Now()
		every     = rate.Every(window / time.Duration(limit))
	)

	allow := func(key string, now time.Time) bool {
		mu.Lock()
		defer mu.Unlock()

		if now.Sub(lastSweep) > window {
			for k, v := range visitors {
				if now.Sub(v.lastSeen) > window {
					delete(visitors, k)
				}
			}
			lastSweep = now
		}

		v, ok := visitors[key]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(every, limit)}
			visitors[key] = v
		}
		v.lastSeen = now
		return v.limiter.AllowN(now, 1)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if actor, ok := ActorFrom(c); ok {
				key = actor.Address
			}

			if !allow(key, time.Now()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
