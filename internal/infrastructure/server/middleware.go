package server

import (
	"math/rand"
	"time"

	"github.com/labstack/echo/v4"
)

// Latency delays every request by a uniformly random duration in [min, max]
// to imitate a real network. A zero max disables the delay.
func Latency(min, max time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if max <= 0 {
			return next
		}
		if min > max {
			min = max
		}

		return func(c echo.Context) error {
			delay := min
			if spread := max - min; spread > 0 {
				delay += time.Duration(rand.Int63n(int64(spread) + 1))
			}

			timer := time.NewTimer(delay)
			defer timer.Stop()

			select {
			case <-timer.C:
				return next(c)
			case <-c.Request().Context().Done():
				return c.Request().Context().Err()
			}
		}
	}
}
