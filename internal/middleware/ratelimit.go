package middleware

import (
	"strconv"
	"time"

	"lingualift/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RateLimit gates mutating endpoints with a fixed-window policy. Over
// the limit the caller gets 429 with a reset hint; the check itself is
// an in-memory lookup and never blocks.
func RateLimit(limiter *ratelimit.Limiter, maxRequests int, window time.Duration, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := ratelimit.ClientKey(c.Get("X-Real-IP"), c.Get("X-Forwarded-For"))

		res, err := limiter.Check(key, maxRequests, window)
		if err != nil {
			logger.Error("rate limit policy invalid", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "rate limiter unavailable")
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", res.ResetAt.UTC().Format(time.RFC3339))

		if !res.Allowed {
			seconds := int(time.Until(res.ResetAt).Round(time.Second).Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Set("Retry-After", strconv.Itoa(seconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":    "rate limit exceeded",
				"reset_at": res.ResetAt.UTC(),
			})
		}

		return c.Next()
	}
}
