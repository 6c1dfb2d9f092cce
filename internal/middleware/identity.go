package middleware

// identity.go holds helpers shared by the rate limit and cache
// middleware. They read the user identity that JWTAuth stored in the
// context; requests outside the authenticated group resolve to "anon".

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a string form of the authenticated user id, or
// "anon" when the request carries no identity. JWT numeric claims
// arrive as float64, so the value is formatted rather than asserted.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
		return "anon"
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}
