package config

import "time"

// Config holds all application configuration in a structured way.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Providers ProvidersConfig
}

type AppConfig struct {
	Version        string
	Port           string
	Debug          bool
	BasePath       string
	TrustedProxies []string
	CorsOrigins    []string
	StoragePath    string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // File path for SQLite, DB name for Postgres
}

type CacheConfig struct {
	Enabled   bool
	Address   string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

type ProvidersConfig struct {
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	GeminiAPIKey      string
	ModelRegistryPath string
}

// Global provides access to the loaded configuration globally.
var Global *Config

// Load builds the configuration from environment variables and defaults.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Version:        getEnv("APP_VERSION", "dev"),
			Port:           getEnv("APP_PORT", "3000"),
			Debug:          getEnvBool("APP_DEBUG", false),
			BasePath:       getEnv("APP_BASE_PATH", ""),
			TrustedProxies: getEnvList("APP_TRUSTED_PROXIES", nil),
			CorsOrigins:    getEnvList("APP_CORS_ORIGINS", []string{"*"}),
			StoragePath:    getEnv("APP_STORAGE_PATH", "storages"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "storages/promptdeck.db"),
		},
		Cache: CacheConfig{
			Enabled:   getEnvBool("CACHE_ENABLED", true),
			Address:   getEnv("CACHE_ADDRESS", "localhost:6379"),
			Password:  getEnv("CACHE_PASSWORD", ""),
			DB:        getEnvInt("CACHE_DB", 0),
			KeyPrefix: getEnv("CACHE_KEY_PREFIX", "promptdeck"),
			TTL:       getEnvDuration("CACHE_TTL", time.Hour),
		},
		Providers: ProvidersConfig{
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
			GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
			ModelRegistryPath: getEnv("MODEL_REGISTRY_PATH", "llm_registry.json"),
		},
	}

	Global = cfg
	return cfg, nil
}
