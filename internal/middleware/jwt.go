package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"              // HTTP status codes for responses
    "strings"               // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/conbyt/conbyt-cms/internal/utils" // session token verification
)

// SessionAuth returns an Echo middleware that validates a Bearer session
// token and injects the token's identity claims into the request context.
// The provided secret must match the one used when issuing tokens.  This
// middleware wraps every CMS route so that handlers can access the
// authenticated admin via `c.Get("admin_id")`, `c.Get("email")` and
// `c.Get("role")`.  Verification is purely cryptographic: no database
// access happens here, and a rejected token always produces the same
// generic 401 body regardless of what was wrong with it.
func SessionAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            sess, err := utils.ParseSessionToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }

            // Store the identity claims in the context for handlers and
            // downstream middleware (role checks, rate-limit keys).
            c.Set("admin_id", sess.AdminID)
            c.Set("email", sess.Email)
            c.Set("role", sess.Role)
            return next(c)
        }
    }
}
