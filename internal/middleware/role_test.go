package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, role any) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	reached := false
	h := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec.Code, reached
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		role    any
		status  int
		reached bool
	}{
		{name: "admin allowed", allowed: []string{"admin", "editor"}, role: "admin", status: http.StatusOK, reached: true},
		{name: "editor allowed", allowed: []string{"admin", "editor"}, role: "editor", status: http.StatusOK, reached: true},
		{name: "editor blocked from admin-only", allowed: []string{"admin"}, role: "editor", status: http.StatusForbidden},
		{name: "unknown role blocked", allowed: []string{"admin", "editor"}, role: "viewer", status: http.StatusForbidden},
		{name: "missing role blocked", allowed: []string{"admin", "editor"}, role: nil, status: http.StatusForbidden},
		{name: "non-string role blocked", allowed: []string{"admin"}, role: 7, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, reached := runWithRole(t, RequireRole(tt.allowed...), tt.role)
			assert.Equal(t, tt.status, code)
			assert.Equal(t, tt.reached, reached)
		})
	}
}
