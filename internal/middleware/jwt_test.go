package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conbyt/conbyt-cms/internal/utils"
)

const testSecret = "middleware-test-secret"

// invoke runs a request through the given middleware with a terminal
// handler that records whether it was reached.
func invoke(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	reached := false
	h := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c, reached
}

func TestSessionAuthMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/blogs", nil)
	rec, _, reached := invoke(t, SessionAuth(testSecret), req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestSessionAuthMalformedHeader(t *testing.T) {
	for _, header := range []string{"Basic abc", "Bearer", "bearer token", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/blogs", nil)
		req.Header.Set("Authorization", header)
		rec, _, reached := invoke(t, SessionAuth(testSecret), req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, reached, "header %q", header)
	}
}

func TestSessionAuthBadToken(t *testing.T) {
	st, err := utils.NewSessionToken("a-different-secret", 1, "x@y.com", "admin", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+st.Token)
	rec, _, reached := invoke(t, SessionAuth(testSecret), req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestSessionAuthValidToken(t *testing.T) {
	st, err := utils.NewSessionToken(testSecret, 42, "x@y.com", "editor", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+st.Token)
	rec, c, reached := invoke(t, SessionAuth(testSecret), req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, uint64(42), c.Get("admin_id"))
	assert.Equal(t, "x@y.com", c.Get("email"))
	assert.Equal(t, "editor", c.Get("role"))
}
