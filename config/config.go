package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Dataset sources understood by the API server
const (
	DatasetSourceFile     = "file"
	DatasetSourceS3       = "s3"
	DatasetSourceDatabase = "database"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string `validate:"required,numeric"`
	ServerHost string

	// Dataset configuration
	DatasetSource string `validate:"oneof=file s3 database"`
	DatasetPath   string `validate:"required_if=DatasetSource file"`
	S3BucketName  string `validate:"required_if=DatasetSource s3"`
	S3DatasetKey  string `validate:"required_if=DatasetSource s3"`
	AWSRegion     string

	// Database configuration
	DBDriver   string `validate:"oneof=postgres sqlite"`
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Caching and rate limiting
	CacheTTL           time.Duration `validate:"gte=0"`
	RateLimitPerMinute int           `validate:"gte=0"`

	// HTTP surface
	CORSAllowedOrigins []string
	UIPageSize         int `validate:"gte=1"`

	// Logging
	LogLevel  string `validate:"oneof=trace debug info warn warning error disabled"`
	LogFormat string `validate:"oneof=json console"`
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI, Development, Test, Production:
		loadFromEnv(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Sensitive values fall back to Docker secrets outside CI
	if env != CI {
		if cfg.DBPassword == "" {
			cfg.DBPassword = readSecret("db_password")
		}
		if cfg.RedisPassword == "" {
			cfg.RedisPassword = readSecret("redis_password")
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromEnv fills cfg from environment variables, applying defaults for anything unset
func loadFromEnv(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "5000")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")

	cfg.DatasetSource = strings.ToLower(getEnv("DATASET_SOURCE", DatasetSourceFile))
	cfg.DatasetPath = getEnv("DATASET_PATH", "Cleaned_Indian_Food_Dataset.csv")
	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.S3DatasetKey = os.Getenv("S3_DATASET_KEY")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnv("DB_NAME", "vegfinder")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.DBPath = getEnv("DB_PATH", "vegfinder.db")

	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.CacheTTL = getDuration("CACHE_TTL", 10*time.Minute)
	cfg.RateLimitPerMinute = getInt("RATE_LIMIT_PER_MINUTE", 60)

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8501,http://localhost:5173"))
	cfg.UIPageSize = getInt("UI_PAGE_SIZE", 5)

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", defaultLogFormat(cfg.Environment)))
}

// RedisEnabled reports whether enough Redis configuration is present to connect
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// DSN builds the connection string for the configured database driver
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func defaultLogFormat(env Environment) string {
	if env == Production || env == CI {
		return "json"
	}
	return "console"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
