package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conbyt/conbyt-cms/internal/config"
)

// postJSON builds an echo context for a JSON POST body.
func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	h := &AuthHandler{Cfg: config.Config{TokenSecret: "s", TokenTTLHours: 1}}
	c, rec := postJSON("/v1/auth/login", `{"email": `)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	h := &AuthHandler{Cfg: config.Config{TokenSecret: "s", TokenTTLHours: 1}}
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "missing password", body: `{"email":"a@b.com"}`},
		{name: "missing email", body: `{"password":"secret"}`},
		{name: "whitespace email", body: `{"email":"   ","password":"secret"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := postJSON("/v1/auth/login", tt.body)
			require.NoError(t, h.Login(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
