package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Storage configuration
	StoreType string // memory or database

	// Database configuration (used when StoreType is "database")
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Pinning service configuration
	PinningAPIURL string
	PinningAPIKey string

	// Upload handling
	UploadTmpDir   string
	UploadMaxBytes int

	// Auth configuration
	JWTSecret    string
	DemoUser     string
	DemoPassword string
}

// Load loads configuration from the environment, reading a .env file first
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		StoreType:         getEnv("STORE_TYPE", "memory"),
		DBType:            getEnv("DB_TYPE", "mysql"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		PinningAPIURL:     getEnv("PINNING_API_URL", "https://node.lighthouse.storage"),
		PinningAPIKey:     getEnv("PINNING_API_KEY", ""),
		UploadTmpDir:      getEnv("UPLOAD_TMP_DIR", os.TempDir()),
		UploadMaxBytes:    getEnvAsInt("UPLOAD_MAX_BYTES", 500*1024*1024),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		DemoUser:          getEnv("DEMO_USER", "demo"),
		DemoPassword:      getEnv("DEMO_PASSWORD", "demo"),
	}

	// Validate required fields
	switch cfg.StoreType {
	case "memory":
		// no database needed
	case "database":
		if cfg.DBDatabase == "" {
			return nil, fmt.Errorf("DB_DATABASE is required when STORE_TYPE is database")
		}
		if cfg.DBType != "sqlite" && cfg.DBUser == "" {
			return nil, fmt.Errorf("DB_USER is required when STORE_TYPE is database")
		}
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.StoreType)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// The pinning credential is not required at startup: endpoints that depend
	// on it fail with 500 at request time instead, so the rest of the API
	// remains usable without a service account.

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
