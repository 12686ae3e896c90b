package gatepass_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/gatepass/pkg/gatepasssdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitIssueEndpoint verifies issuance is throttled once the burst
// is spent.
func TestRateLimitIssueEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := gatepasssdk.NewClient(baseURL)

	var lastErr error
	for range 40 {
		if _, lastErr = client.Issue(t.Context(), "Guest"); lastErr != nil {
			break
		}
	}
	assertAPIError(t, lastErr, http.StatusTooManyRequests, gatepasssdk.ErrorCodeRateLimited)
}

// TestRateLimitHealthEndpoints verifies health checks have lenient limits.
func TestRateLimitHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := gatepasssdk.NewClient(baseURL)

	for i := range 30 {
		health, err := client.GetLiveness(t.Context())
		require.NoError(t, err, "Liveness request %d should not be rate limited", i+1)
		require.Equal(t, "ok", health.Status)
	}
}
