package resource

import (
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	mu         sync.RWMutex
	v          = viper.New()
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// init loads application properties from YAML when the file is present
func init() {
	var value, ok = os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		value = "configs/application.yml"
	}
	if _, err := os.Stat(value); err != nil {
		log.Printf("Properties file %s not found, using defaults", value)
		return
	}
	Init(value)
}

// Init replaces the current properties with the content of filepath.
func Init(filepath string) {
	next := viper.New()
	next.SetConfigFile(filepath)
	next.SetConfigType("yml")

	if err := next.ReadInConfig(); err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", next.AllSettings(), resolved)
	for key, value := range resolved {
		next.Set(key, value)
	}

	mu.Lock()
	v = next
	mu.Unlock()
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch val := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(val)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = val
		case map[string]interface{}:
			parsePropertiesMap(fullKey, val, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable expands a ${NAME:default} placeholder; other strings pass through unchanged
func resolveEnvVariable(value string) any {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value
	}

	envName := matches[1]
	defaultValue := ""
	if len(matches) > 2 {
		defaultValue = matches[2]
	}

	if envValue, exists := os.LookupEnv(envName); exists {
		return envValue
	}
	return defaultValue
}

func current() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	return v
}

func IsSet(key string) bool {
	return current().IsSet(key)
}

func Get(key string) any {
	return current().Get(key)
}

func GetString(key string) string {
	return current().GetString(key)
}

// GetStringOrDefault returns def when the key is unset or empty.
func GetStringOrDefault(key, def string) string {
	if value := current().GetString(key); value != "" {
		return value
	}
	return def
}

func GetBool(key string) bool {
	return current().GetBool(key)
}

func GetDuration(key string) time.Duration {
	return current().GetDuration(key)
}

// GetDurationOrDefault returns def when the key is unset or not positive.
func GetDurationOrDefault(key string, def time.Duration) time.Duration {
	if value := current().GetDuration(key); value > 0 {
		return value
	}
	return def
}

func GetTime(key string) time.Time {
	return current().GetTime(key)
}

func GetInt(key string) int {
	return current().GetInt(key)
}

// GetIntOrDefault returns def when the key is unset or not positive.
func GetIntOrDefault(key string, def int) int {
	if value := current().GetInt(key); value > 0 {
		return value
	}
	return def
}

func GetInt32(key string) int32 {
	return current().GetInt32(key)
}

func GetInt64(key string) int64 {
	return current().GetInt64(key)
}

func GetIntSlice(key string) []int {
	return current().GetIntSlice(key)
}

func GetFloat64(key string) float64 {
	return current().GetFloat64(key)
}

func GetSizeInBytes(key string) uint {
	return current().GetSizeInBytes(key)
}

func GetStringSlice(key string) []string {
	return current().GetStringSlice(key)
}
