// Package config provides configuration management for the loading simulator.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Log      LogConfig
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Packing  PackingConfig
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string
	Pretty bool
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	MaxUploadBytes int64
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// CacheConfig holds simulation result cache configuration.
type CacheConfig struct {
	Size          int
	TTL           time.Duration
	Shards        int
	MaxPlacements int
}

// AuthConfig holds API key authentication configuration.
type AuthConfig struct {
	Enabled bool
	APIKeys map[string]bool
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// MaxPoolSize caps concurrent MongoDB connections.
	MaxPoolSize    int
	ConnectTimeout time.Duration
	// Request log writer pool
	LogBufferSize int
	LogWorkers    int
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// PackingConfig holds the loading engine defaults.
type PackingConfig struct {
	// RotationMode is "none" or "global_best".
	RotationMode     string
	MaxPlacements    int
	DefaultContainer string
	// CatalogFile is an optional YAML file with container presets.
	CatalogFile string
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 8<<20)),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size:          getEnvInt("CACHE_SIZE", 256),
			TTL:           getEnvDuration("CACHE_TTL", 10*time.Minute),
			Shards:        getEnvInt("CACHE_SHARDS", 0),
			MaxPlacements: getEnvInt("CACHE_MAX_PLACEMENTS", 20_000),
		},
		Auth: AuthConfig{
			Enabled: getEnvBool("AUTH_ENABLED", false),
			APIKeys: parseAPIKeys(os.Getenv("API_KEYS")),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "loadsim"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			MaxPoolSize:                    getEnvInt("MONGODB_MAX_POOL_SIZE", 20),
			ConnectTimeout:                 getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
			LogBufferSize:                  getEnvInt("LOG_BUFFER_SIZE", 1000),
			LogWorkers:                     getEnvInt("LOG_WORKERS", 4),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Packing: PackingConfig{
			RotationMode:     getEnv("ROTATION_MODE", "none"),
			MaxPlacements:    getEnvInt("MAX_PLACEMENTS", 2_000_000),
			DefaultContainer: strings.ToLower(getEnv("DEFAULT_CONTAINER", "20ft")),
			CatalogFile:      getEnv("CONTAINER_CATALOG_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
