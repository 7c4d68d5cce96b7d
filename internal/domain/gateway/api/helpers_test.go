package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	pkghttp "cep-api/pkg/http"
)

func fastOptions(attempts int) pkghttp.ClientOptions {
	return pkghttp.ClientOptions{
		Backoff: &pkghttp.BackoffConfig{
			Attempts: attempts,
			Timeout:  200 * time.Millisecond,
			Wait:     func(context.Context, time.Duration) error { return nil },
		},
	}
}

// jsonServer answers every request with status and body, counting hits and keeping the last request.
func jsonServer(t *testing.T, status int, body string) (*httptest.Server, *int32, *atomic.Value) {
	t.Helper()
	var hits int32
	var last atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		last.Store(r.URL.String())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits, &last
}
