package middlewares

import (
	"log"
	"strconv"
	"strings"

	"intake-backend/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// ClientKey identifies the submitter: first X-Forwarded-For hop when present
// (we sit behind a proxy in production), else the socket address.
func ClientKey(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}

// RateLimit counts the request against the caller's fixed window and denies
// with 429 once the quota is spent. X-RateLimit-* headers are set on every
// response, allowed or not. A store error denies the request (fail closed).
func RateLimit(store ratelimit.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := store.Check(c.Context(), ClientKey(c))
		if err != nil {
			log.Printf("rate limit store error: %v", err)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Too many requests",
				"message": "Please try again later.",
			})
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))

		if !d.Allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Too many requests",
				"message": "You've reached the maximum number of submissions. Please try again later.",
			})
		}
		return c.Next()
	}
}
