package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"cep-api/pkg/resource"
)

func TestLookupAllKeepsInputOrder(t *testing.T) {
	var running, peak int32
	inputs := []string{"01310100", "20040020", "30130010", "40020000", "50030230"}

	results := lookupAll(context.Background(), inputs, 2, func(_ context.Context, input string) lookupResult {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		defer atomic.AddInt32(&running, -1)
		return lookupResult{Input: input}
	})

	for i, result := range results {
		if result.Input != inputs[i] {
			t.Fatalf("results[%d] = %s, want %s", i, result.Input, inputs[i])
		}
	}
	if peak > 2 {
		t.Fatalf("peak concurrency = %d, want <= 2", peak)
	}
}

func TestLookupAllWithoutWorkers(t *testing.T) {
	results := lookupAll(context.Background(), []string{"a"}, 0, func(_ context.Context, input string) lookupResult {
		return lookupResult{Input: input}
	})
	if len(results) != 1 || results[0].Input != "a" {
		t.Fatalf("results = %+v", results)
	}
}

func TestCepUseCaseReadsProviderURLsFromProperties(t *testing.T) {
	var hits int32
	var requested atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		requested.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"cep":"01310100","state":"SP","city":"São Paulo","neighborhood":"Bela Vista","street":"Avenida Paulista"}`)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "application.yml")
	properties := fmt.Sprintf("app:\n  cep:\n    brasilapi:\n      base-url: %s/api/cep/v2\n", srv.URL)
	if err := os.WriteFile(path, []byte(properties), 0o600); err != nil {
		t.Fatal(err)
	}
	resource.Init(path)

	data, err := newCepUseCase().FetchCepData(context.Background(), "01310100")
	if err != nil {
		t.Fatalf("FetchCepData() error = %v", err)
	}
	if data.Cidade != "São Paulo" || data.Uf != "SP" {
		t.Fatalf("data = %+v", data)
	}
	if atomic.LoadInt32(&hits) != 1 || requested.Load().(string) != "/api/cep/v2/01310100" {
		t.Fatalf("hits = %d path = %v", hits, requested.Load())
	}
}
