package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"piqueunique/internal/identity"
)

func identifiedRequest(uid, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.Header.Set("Idempotency-Key", key)
	ctx := context.WithValue(req.Context(), identityKey, &identity.Identity{UID: uid})
	return req.WithContext(ctx)
}

func TestIdempotency_ReplaysForSameCaller(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "Idempotency-Key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"b-1"}`))
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, identifiedRequest("user-1", "key-1"))

	second := httptest.NewRecorder()
	h.ServeHTTP(second, identifiedRequest("user-1", "key-1"))

	assert.Equal(t, 1, calls, "second submission must be served from the cache")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

// The same client-chosen key presented by a different caller must not see the
// first caller's cached response.
func TestIdempotency_KeyIsScopedToCaller(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "Idempotency-Key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(IdentityFrom(r.Context()).UID))
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, identifiedRequest("user-1", "key-1"))

	second := httptest.NewRecorder()
	h.ServeHTTP(second, identifiedRequest("user-2", "key-1"))

	require.Equal(t, 2, calls)
	assert.Equal(t, "user-1", first.Body.String())
	assert.Equal(t, "user-2", second.Body.String())
}

func TestIdempotency_DoesNotCacheErrors(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "Idempotency-Key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusConflict)
	}))

	h.ServeHTTP(httptest.NewRecorder(), identifiedRequest("user-1", "key-1"))
	h.ServeHTTP(httptest.NewRecorder(), identifiedRequest("user-1", "key-1"))

	assert.Equal(t, 2, calls, "error outcomes may be retried")
}

func TestIdempotency_PassesThroughWithoutKey(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "Idempotency-Key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/drafts", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 2, calls)
}
