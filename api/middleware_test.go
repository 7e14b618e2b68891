package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsBurstThenRefuses(t *testing.T) {
	// GIVEN: A limiter with a burst of 2 and a frozen clock
	rl := NewRateLimiter(1, 2)
	defer rl.Stop()
	frozen := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return frozen }

	// THEN: Two requests pass, the third waits for a refill
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// Another client has its own bucket.
	assert.True(t, rl.Allow("10.0.0.2"))

	// One second later one token is back.
	frozen = frozen.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_ZeroRateIsUnlimited(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	defer rl.Stop()

	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("10.0.0.1"))
	}
}

func TestRateLimiter_SweepDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	now = now.Add(30 * time.Minute)
	rl.Allow("10.0.0.2")
	require.Equal(t, 2, rl.Clients())

	now = now.Add(45 * time.Minute)
	rl.sweep()

	assert.Equal(t, 1, rl.Clients(), "only the client seen within the idle timeout survives")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimiter_Middleware(t *testing.T) {
	// GIVEN: The calculator routes behind a limiter with a burst of 1
	rl := NewRateLimiter(0.001, 1)
	defer rl.Stop()
	router := NewRouter(newTestHandler(t), RouterOptions{Limiter: rl})

	send := func(path, ip string) int {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		req.RemoteAddr = ip + ":4321"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	// THEN: The second calculator call from the same IP is refused
	assert.Equal(t, http.StatusOK, send("/api/calculators/liquidation", "192.0.2.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("/api/calculators/liquidation", "192.0.2.1"))
	assert.Equal(t, http.StatusOK, send("/api/calculators/liquidation", "192.0.2.2"))

	// Reference endpoints are not throttled.
	req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
	req.RemoteAddr = "192.0.2.1:4321"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:5555"
	assert.Equal(t, "198.51.100.7", clientKey(req))

	req.RemoteAddr = "198.51.100.7"
	assert.Equal(t, "198.51.100.7", clientKey(req))
}
