package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expo-registry-backend/config"
)

// httptest.NewRequest always reports this peer address.
const testPeer = "192.0.2.1"

func TestRouter_ClientIPForRateLimit(t *testing.T) {
	testCases := []struct {
		name     string
		proxies  []string
		platform string
		header   string
		// status of the second request from the same peer, each request
		// carrying a different header value
		wantSecond int
	}{
		{name: "forwarded header from untrusted peer is ignored", header: "X-Forwarded-For", wantSecond: http.StatusTooManyRequests},
		{name: "real ip header from untrusted peer is ignored", header: "X-Real-IP", wantSecond: http.StatusTooManyRequests},
		{name: "peer outside trusted range is ignored", proxies: []string{"10.0.0.0/8"}, header: "X-Forwarded-For", wantSecond: http.StatusTooManyRequests},
		{name: "trusted proxy reports the client", proxies: []string{testPeer}, header: "X-Forwarded-For", wantSecond: http.StatusOK},
		{name: "trusted proxy range reports the client", proxies: []string{"192.0.2.0/24"}, header: "X-Forwarded-For", wantSecond: http.StatusOK},
		{name: "platform header", platform: "CF-Connecting-IP", header: "CF-Connecting-IP", wantSecond: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := setupRouterWithConfig(t, config.ServerConfig{
				TrustedProxies:  tc.proxies,
				TrustedPlatform: tc.platform,
				RateLimitPerSec: 0.001,
				RateLimitBurst:  1,
			})

			send := func(clientIP string) int {
				req := httptest.NewRequest(http.MethodGet, "/expositores", nil)
				req.Header.Set(tc.header, clientIP)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				return w.Code
			}

			require.Equal(t, http.StatusOK, send("203.0.113.1"))
			assert.Equal(t, tc.wantSecond, send("203.0.113.2"))
		})
	}
}

func TestRouter_SpoofedForwardedForIsRateLimited(t *testing.T) {
	router, _ := setupRouterWithConfig(t, config.ServerConfig{RateLimitPerSec: 0.001, RateLimitBurst: 1})

	allowed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/expositores", nil)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}

func TestNewRouter_RejectsUnsafeClientIPSettings(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.ServerConfig
	}{
		{name: "forwarded-for as platform header", cfg: config.ServerConfig{TrustedPlatform: "X-Forwarded-For"}},
		{name: "forwarded-for in another case", cfg: config.ServerConfig{TrustedPlatform: "x-forwarded-for"}},
		{name: "invalid proxy", cfg: config.ServerConfig{TrustedProxies: []string{"not-an-ip"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRouter(nil, tc.cfg, nil)
			assert.Error(t, err)
			assert.Nil(t, r)
		})
	}
}
