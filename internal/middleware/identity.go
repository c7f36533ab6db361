package middleware

// identity.go defines helper functions shared across middleware files.
// currentIdentity pulls the admin id stored by SessionAuth from the Echo
// context. When no token is present, "anon" is returned; public routes
// are keyed purely by IP.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentIdentity extracts an identity string for rate-limit and cache
// keys. It returns "anon" when no admin is authenticated.
func currentIdentity(c echo.Context) string {
    if v := c.Get("admin_id"); v != nil {
        switch t := v.(type) {
        case uint64:
            return strconv.FormatUint(t, 10)
        case string:
            if t != "" {
                return t
            }
        }
    }
    return "anon"
}
