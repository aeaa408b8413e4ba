package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries everything the server needs at startup. Values come from
// the environment, optionally overridden by a YAML file named in
// CONFIG_FILE.
type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	CORSOrigins string `yaml:"cors_origins"`

	// Encrypted state blob location and its passphrase.
	StatePath       string `yaml:"state_path"`
	StatePassphrase string `yaml:"state_passphrase"`

	// Completion service.
	OpenRouterAPIKey string `yaml:"openrouter_api_key"`
	OpenRouterURL    string `yaml:"openrouter_url"`
	AppReferer       string `yaml:"app_referer"`
	AppTitle         string `yaml:"app_title"`

	// Optional remote sync; the credential is independent of the AI key.
	SyncEndpoint   string `yaml:"sync_endpoint"`
	SyncCredential string `yaml:"sync_credential"`

	Debug bool `yaml:"debug"`
}

func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StatePath:        getEnv("STATE_PATH", "data/poewrite.state"),
		StatePassphrase:  getEnv("STATE_PASSPHRASE", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterURL:    getEnv("OPENROUTER_URL", ""),
		AppReferer:       getEnv("APP_REFERER", "http://localhost:8080"),
		AppTitle:         getEnv("APP_TITLE", "Poe Write"),
		SyncEndpoint:     getEnv("SYNC_ENDPOINT", ""),
		SyncCredential:   getEnv("SYNC_CREDENTIAL", ""),
		Debug:            getEnv("DEBUG", defaultDebug(env)) == "true",
	}

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if cfg.StatePassphrase == "" {
		return nil, fmt.Errorf("STATE_PASSPHRASE is required: the state blob is encrypted at rest")
	}
	return cfg, nil
}

func defaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
