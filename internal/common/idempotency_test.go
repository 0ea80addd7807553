package common

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newIdem(t *testing.T) (Idem, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return Idem{R: rdb, TTL: time.Minute}, mr
}

func idemRequest(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req
}

func TestIdemAllowsFirstRequest(t *testing.T) {
	idem, _ := newIdem(t)
	var calls int
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, idemRequest("key-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, calls)
}

func TestIdemRejectsDuplicateKey(t *testing.T) {
	idem, _ := newIdem(t)
	var calls int
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, idemRequest("key-1"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, idemRequest("key-1"))

	require.Equal(t, http.StatusConflict, second.Code)
	require.Contains(t, second.Body.String(), "IDEMPOTENT_REPLAY")
	require.Equal(t, 1, calls)
}

func TestIdemDistinctKeysPass(t *testing.T) {
	idem, _ := newIdem(t)
	var calls int
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), idemRequest("key-1"))
	handler.ServeHTTP(httptest.NewRecorder(), idemRequest("key-2"))

	require.Equal(t, 2, calls)
}

func TestIdemSkipsWhenHeaderAbsent(t *testing.T) {
	idem, _ := newIdem(t)
	var calls int
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), idemRequest(""))
	handler.ServeHTTP(httptest.NewRecorder(), idemRequest(""))

	require.Equal(t, 2, calls)
}

func TestIdemKeyExpires(t *testing.T) {
	idem, mr := newIdem(t)
	var calls int
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), idemRequest("key-1"))
	mr.FastForward(2 * time.Minute)
	handler.ServeHTTP(httptest.NewRecorder(), idemRequest("key-1"))

	require.Equal(t, 2, calls)
}
