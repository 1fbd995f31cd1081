package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (tokens are issued by the external auth service)
	JWTSecret string
	JWTIssuer string

	// Pipeline
	PipelineAPIKey string

	// Market data
	FinnhubAPIURL     string
	FinnhubAPIKey     string
	MarketDataTimeout time.Duration
	QuoteCacheTTL     time.Duration
	QuoteCacheSize    int

	// Logging
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "stonkers"),
		DBPassword: getEnv("DB_PASSWORD", "stonkers"),
		DBName:     getEnv("DB_NAME", "stonkers"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTIssuer: getEnv("JWT_ISSUER", ""),

		// Pipeline
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		// Market data
		FinnhubAPIURL: getEnv("FINNHUB_API_URL", "https://finnhub.io/api/v1"),
		FinnhubAPIKey: getEnv("FINNHUB_API_KEY", ""),

		// Logging
		LogFile: getEnv("LOG_FILE", ""),
	}

	config.MarketDataTimeout = getDuration("MARKET_DATA_TIMEOUT", 10*time.Second)
	config.QuoteCacheTTL = getDuration("QUOTE_CACHE_TTL", 60*time.Second)
	config.QuoteCacheSize = getInt("QUOTE_CACHE_SIZE", 500)
	config.LogMaxSizeMB = getInt("LOG_MAX_SIZE_MB", 100)
	config.LogMaxBackups = getInt("LOG_MAX_BACKUPS", 3)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a duration variable, falling back on absence or error.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// getInt parses an integer variable, falling back on absence or error.
func getInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
