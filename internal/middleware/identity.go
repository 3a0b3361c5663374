package middleware

// identity.go defines helper functions shared across middleware files: the
// user identity extracted by JWTAuth from context, both as a numeric ID for
// database lookups and as a string for cache/rate-limit keys ("guest" when
// the request is unauthenticated).

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// userIDFrom converts the "user_id" context value stored by JWTAuth into a
// uint64. JWT claims decode numbers as float64, so several shapes are
// accepted.
func userIDFrom(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// userKey returns a stable identity string for cache and rate-limit keys.
// Unauthenticated requests share the "guest" identity.
func userKey(c echo.Context) string {
	if id, err := userIDFrom(c); err == nil {
		return strconv.FormatUint(id, 10)
	}
	return "guest"
}

// contextWithTimeout derives a bounded context from the request context for
// database calls made inside middleware.
func contextWithTimeout(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), d)
}
