package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conbyt/conbyt-cms/internal/config"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`[{"slug":"hello-world"}]`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, []byte("short"), []byte("\x00\x00\x00\xc8\xff\xff\xff\xff")} {
		_, _, _, ok := decodePayload(bs)
		assert.False(t, ok)
	}
}

func TestCacheKeyFromStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/blogs")
		return c
	}

	base := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	k1 := cacheKeyFrom(base, newCtx("/v1/blogs?limit=10"))
	k2 := cacheKeyFrom(base, newCtx("/v1/blogs?limit=20"))
	k3 := cacheKeyFrom(base, newCtx("/v1/blogs?limit=10"))
	assert.NotEqual(t, k1, k2, "different query strings must map to different keys")
	assert.Equal(t, k1, k3, "identical requests must map to the same key")

	routeOnly := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}
	k4 := cacheKeyFrom(routeOnly, newCtx("/v1/blogs?limit=10"))
	k5 := cacheKeyFrom(routeOnly, newCtx("/v1/blogs?limit=20"))
	assert.Equal(t, k4, k5, "route strategy ignores the query string")
}
