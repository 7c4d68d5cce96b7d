package resource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeProperties(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitResolvesEnvPlaceholders(t *testing.T) {
	t.Setenv("CEP_TEST_PORT", "9090")
	Init(writeProperties(t, `
app:
  name: cep-api
  server:
    port: ${CEP_TEST_PORT:8080}
    context-path: ${CEP_TEST_UNSET:/cep-api}
  cep:
    timeout: 5s
    attempts: 2
`))

	if got := GetString("app.name"); got != "cep-api" {
		t.Fatalf("app.name = %q", got)
	}
	if got := GetInt("app.server.port"); got != 9090 {
		t.Fatalf("app.server.port = %d", got)
	}
	if got := GetString("app.server.context-path"); got != "/cep-api" {
		t.Fatalf("app.server.context-path = %q", got)
	}
	if got := GetDuration("app.cep.timeout"); got != 5*time.Second {
		t.Fatalf("app.cep.timeout = %v", got)
	}
	if got := GetInt("app.cep.attempts"); got != 2 {
		t.Fatalf("app.cep.attempts = %d", got)
	}
}

func TestDefaultsApplyForMissingKeys(t *testing.T) {
	Init(writeProperties(t, "app:\n  name: cep-api\n"))

	if got := GetStringOrDefault("app.history.storage", "sqlite"); got != "sqlite" {
		t.Fatalf("storage default = %q", got)
	}
	if got := GetIntOrDefault("app.history.limit", 10); got != 10 {
		t.Fatalf("limit default = %d", got)
	}
	if got := GetDurationOrDefault("app.weather.cache-ttl", 10*time.Minute); got != 10*time.Minute {
		t.Fatalf("ttl default = %v", got)
	}
	if IsSet("app.cache.type") {
		t.Fatal("app.cache.type should not be set")
	}
}
