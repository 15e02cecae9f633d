package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Port      string
	Env       string
	APIPrefix string
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey     string
	ExpirationDays int
}

// BcryptConfig holds password hashing configuration
type BcryptConfig struct {
	Cost int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

// CORSConfig holds cross-origin configuration
type CORSConfig struct {
	FrontendURL  string
	ExtraOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Config holds all configuration
type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	Bcrypt    BcryptConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
}

// IsProduction reports whether the app runs in production mode. Error detail
// is redacted and debug routes are not mounted when this is true.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// AllowedOrigins returns the full CORS allow-list: the configured frontend URL
// plus the fixed development origins.
func (c *CORSConfig) AllowedOrigins() []string {
	origins := []string{c.FrontendURL, "http://localhost:3001", "http://127.0.0.1:3000"}
	return append(origins, c.ExtraOrigins...)
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "5000"),
			Env:       getEnv("APP_ENV", "development"),
			APIPrefix: getEnv("API_PREFIX", "/api"),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017/propertyhub"),
			Database:       getEnv("MONGODB_DB", "propertyhub"),
			ConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			SigningKey:     getEnv("JWT_SECRET", "your-secret-key"),
			ExpirationDays: getEnvAsInt("JWT_EXPIRE_DAYS", 7),
		},
		Bcrypt: BcryptConfig{
			Cost: getEnvAsInt("BCRYPT_SALT_ROUNDS", 12),
		},
		RateLimit: RateLimitConfig{
			Window:      getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
			MaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		},
		CORS: CORSConfig{
			FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
			ExtraOrigins: getEnvAsSlice("CORS_EXTRA_ORIGINS"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("api_prefix", c.Server.APIPrefix),
		zap.String("server_port", c.Server.Port),
		zap.Int("jwt_expire_days", c.JWT.ExpirationDays),
		zap.Int("rate_limit_max", c.RateLimit.MaxRequests),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get comma-separated environment variables as slices
func getEnvAsSlice(key string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return nil
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
