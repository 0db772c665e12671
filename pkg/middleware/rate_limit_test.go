package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"piqueunique/internal/identity"
	"piqueunique/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func signToken(t *testing.T, secret, uid string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uid,
		"email": uid + "@example.lt",
	})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// Authentication must run before RateLimit so the limiter sees the verified
// caller instead of falling back to the remote host.
func TestRateLimit_KeysOnAuthenticatedCaller(t *testing.T) {
	log := testLogger()

	var keyed []string
	limiter := NewCallerRateLimiter(100, time.Minute, func(r *http.Request) string {
		key := DefaultCallerExtractor(r)
		keyed = append(keyed, key)
		return key
	}, log)
	defer limiter.Stop()

	provider := identity.NewJWTProvider("test-secret", nil)

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h = RateLimit(limiter)(h)
	h = Authentication(provider, log)(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "user-1"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, keyed, 1)
	assert.Equal(t, "user-1", keyed[0])
}

func TestRateLimit_FallsBackToHostForAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	assert.Equal(t, "203.0.113.7", DefaultCallerExtractor(req))
}

func TestRateLimit_EnforcesLimitPerCaller(t *testing.T) {
	limiter := NewCallerRateLimiter(2, time.Minute, DefaultCallerExtractor, testLogger())
	defer limiter.Stop()

	assert.True(t, limiter.Allow("user-1"))
	assert.True(t, limiter.Allow("user-1"))
	assert.False(t, limiter.Allow("user-1"))

	// Another caller has its own budget.
	assert.True(t, limiter.Allow("user-2"))
}

func TestRateLimit_RejectsWithLocalizedBody(t *testing.T) {
	limiter := NewCallerRateLimiter(0, time.Minute, DefaultCallerExtractor, testLogger())
	defer limiter.Stop()

	h := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run once the limit is hit")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}
