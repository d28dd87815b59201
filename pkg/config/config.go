package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Decision DecisionConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type DecisionConfig struct {
	// ModelsDir is where versioned model artifacts live on disk.
	ModelsDir string
	// CacheCapacity bounds the recommendation LRU cache (entries).
	CacheCapacity int
	// ModelVersion optionally pins serving to one artifact version.
	// Empty means "resolve the current published version".
	ModelVersion string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cacheCapacity := 200_000
	if raw := os.Getenv("DECISION_CACHE_CAPACITY"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, errors.New("invalid DECISION_CACHE_CAPACITY")
		}
		cacheCapacity = parsed
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "4th & Short Decision API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "football_analytics"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Decision: DecisionConfig{
			ModelsDir:     getEnv("DECISION_MODELS_DIR", "models"),
			CacheCapacity: cacheCapacity,
			ModelVersion:  getEnv("DECISION_MODEL_VERSION", ""),
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
