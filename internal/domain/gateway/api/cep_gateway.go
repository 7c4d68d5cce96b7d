package api

import (
	"context"
	"time"

	"cep-api/internal/domain/entity"
	"cep-api/pkg/http"
)

const (
	DefaultCepTimeout  = 5000 * time.Millisecond
	DefaultCepAttempts = 2
)

// CepGateway looks a cleaned 8-digit CEP up in a single provider
type CepGateway interface {
	// Provider returns the tag stamped on results and errors
	Provider() entity.Provider

	// Lookup returns the normalized address or a *ProviderError
	Lookup(ctx context.Context, cep string) (*entity.CepData, error)
}

// DefaultCepBackoff returns the retry policy used by both CEP providers.
func DefaultCepBackoff() *http.BackoffConfig {
	return http.NewBackoffConfig(DefaultCepAttempts, DefaultCepTimeout)
}

func withDefaultBackoff(opts http.ClientOptions, def func() *http.BackoffConfig) http.ClientOptions {
	if opts.Backoff == nil {
		opts.Backoff = def()
	}
	return opts
}

// isUf reports whether s is a two letter state code.
func isUf(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
