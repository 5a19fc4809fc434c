package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xricefarmer/bloglist-server/internal/config"
)

func newCacheCtx(t *testing.T, method, path string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	return c
}

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`[{"id":1,"likes":4}]`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestCacheKeyFromStrategies(t *testing.T) {
	// Same strategy and inputs must agree; different strategies must not
	// collide for the same route.
	cfgA := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}
	cfgB := config.CacheConfig{Prefix: "cache", KeyStrategy: "method_route"}

	ctx1 := newCacheCtx(t, http.MethodGet, "/api/blogs")
	ctx2 := newCacheCtx(t, http.MethodGet, "/api/blogs")

	assert.Equal(t, cacheKeyFrom(cfgA, ctx1), cacheKeyFrom(cfgA, ctx2))
	assert.NotEqual(t, cacheKeyFrom(cfgA, ctx1), cacheKeyFrom(cfgB, ctx1))
}
