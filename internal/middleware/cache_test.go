package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nightwalk/night-walk/internal/config"
)

func TestClampTTL_NeverExceedsPollInterval(t *testing.T) {
	interval := 30 * time.Second
	cases := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{"oversized config is capped", 5 * time.Minute, interval},
		{"zero falls back to the interval", 0, interval},
		{"negative falls back to the interval", -time.Second, interval},
		{"within bounds is kept", 10 * time.Second, 10 * time.Second},
		{"exactly the interval is kept", interval, interval},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampTTL(tc.ttl, interval); got != tc.want {
				t.Fatalf("clampTTL(%v, %v) = %v, want %v", tc.ttl, interval, got, tc.want)
			}
		})
	}
}

func TestClampTTL_TracksShorterPollInterval(t *testing.T) {
	// A deployment polling every 10s must not serve 30s-old entries.
	if got := clampTTL(30*time.Second, 10*time.Second); got != 10*time.Second {
		t.Fatalf("got %v, want 10s", got)
	}
}

func TestNewRedisCache_DisabledPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil, 30*time.Second)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vacancy/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Fatal("next handler was not called")
	}
	if got := rec.Header().Get("X-Cache"); got != "" {
		t.Fatalf("disabled cache set X-Cache=%q", got)
	}
}

func badgeContext(e *echo.Echo, shopID, query string) echo.Context {
	target := "/api/v1/vacancy/" + shopID
	if query != "" {
		target += "?" + query
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/v1/vacancy/:shop_id")
	c.SetParamNames("shop_id")
	c.SetParamValues(shopID)
	return c
}

func TestCacheKeyFrom_SharedPerRouteAndQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "vacancy"}
	e := echo.New()

	a := cacheKeyFrom(cfg, badgeContext(e, "1", ""))
	b := cacheKeyFrom(cfg, badgeContext(e, "1", ""))
	if a != b {
		t.Fatalf("same request produced different keys: %q vs %q", a, b)
	}
	if c := cacheKeyFrom(cfg, badgeContext(e, "1", "area=shinjuku")); c == a {
		t.Fatal("different query strings share a cache key")
	}
}

func TestDecodePayload_RejectsTruncatedInput(t *testing.T) {
	if _, _, _, ok := decodePayload([]byte{1, 2, 3}); ok {
		t.Fatal("decoded a payload shorter than its header")
	}
	// Header length pointing past the end of the buffer.
	bad, err := encodePayload(http.StatusOK, http.Header{"X-Foo": {"bar"}}, []byte("body"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, _, _, ok := decodePayload(bad[:10]); ok {
		t.Fatal("decoded a truncated payload")
	}
}

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"status":"full"}`)
	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Fatalf("header = %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q", gotBody)
	}
}
