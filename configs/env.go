package configs

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type EnvConfig struct {
	ApplicationName string
	ContextPath     string
	Port            string
}

var Env *EnvConfig

func init() {
	// .env is optional; values already exported in the environment win
	_ = godotenv.Load()

	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "cep-api"),
		ContextPath:     getStringOrDefault("CONTEXT_PATH", "/cep-api"),
		Port:            getStringOrDefault("SERVER_PORT", "8080"),
	}
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
