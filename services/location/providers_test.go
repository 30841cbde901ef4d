package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIPServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/8.8.8.8/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestIPGeolocator_LooksUpAndCaches(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	srv, calls := newIPServer(t, http.StatusOK, `{"ip":"8.8.8.8","city":"Sacramento","latitude":38.58,"longitude":-121.49}`)

	g := NewIPGeolocator(srv.URL+"/", rdb, zap.NewNop())
	opts := DefaultGeoOptions()

	coords, err := g.Provider("8.8.8.8").RequestPosition(context.Background(), opts)
	require.NoError(t, err)
	assert.InDelta(t, 38.58, coords.Latitude, 1e-9)

	_, err = g.Provider("8.8.8.8").RequestPosition(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls), "second lookup should hit the cache")

	ttl := mr.TTL("geo:ip:8.8.8.8")
	assert.Equal(t, opts.MaxCacheAge, ttl)

	mr.FastForward(opts.MaxCacheAge + time.Second)
	_, err = g.Provider("8.8.8.8").RequestPosition(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestIPGeolocator_PrivateIPIsUnavailable(t *testing.T) {
	g := NewIPGeolocator("http://127.0.0.1:1", nil, zap.NewNop())
	for _, ip := range []string{"10.0.0.4", "192.168.1.1", "127.0.0.1", "::1", "not-an-ip"} {
		_, err := g.Provider(ip).RequestPosition(context.Background(), DefaultGeoOptions())
		assert.ErrorIs(t, err, ErrPositionUnavailable, ip)
	}
}

func TestIPGeolocator_APIFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"reserved range", http.StatusOK, `{"error":true,"reason":"Reserved IP Address"}`},
		{"no position", http.StatusOK, `{"ip":"8.8.8.8"}`},
		{"garbage", http.StatusOK, `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newIPServer(t, tc.status, tc.body)
			g := NewIPGeolocator(srv.URL, nil, zap.NewNop())
			_, err := g.Provider("8.8.8.8").RequestPosition(context.Background(), DefaultGeoOptions())
			assert.ErrorIs(t, err, ErrPositionUnavailable)
		})
	}
}

func TestLocator_IPSourceIsReported(t *testing.T) {
	srv, _ := newIPServer(t, http.StatusOK, `{"latitude":37.77,"longitude":-122.41}`)
	g := NewIPGeolocator(srv.URL, nil, zap.NewNop())

	res, err := newTestLocator().Locate(context.Background(), g.Provider("8.8.8.8"), DefaultGeoOptions())
	require.NoError(t, err)
	assert.Equal(t, "san-francisco", res.Location.ID)
	assert.Equal(t, "ip", res.Source)
}
