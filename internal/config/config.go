package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Model artifact sources
const (
	ModelSourceFile     = "file"
	ModelSourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	Model      ModelConfig
	Schema     SchemaConfig
	PostgreSQL PostgreSQLConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            int
	Host            string
	GinMode         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  string
	AllowedMethods  string
	AllowedHeaders  string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	File       string // optional rotated log file, empty disables it
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ModelConfig describes where the trained classifier is read from
type ModelConfig struct {
	Source string // file or postgres
	Path   string
	Name   string // artifact row name when Source is postgres
}

// SchemaConfig holds request validation settings
type SchemaConfig struct {
	Strict bool // reject fields outside the feature schema
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // 完整的数据库连接字符串（优先使用）
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvAsInt("SERVER_PORT", 8000),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
			AllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods:  getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders:  getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
		Model: ModelConfig{
			Source: strings.ToLower(getEnv("MODEL_SOURCE", ModelSourceFile)),
			Path:   getEnv("MODEL_PATH", "mymodel.json"),
			Name:   getEnv("MODEL_NAME", "high-value"),
		},
		Schema: SchemaConfig{
			Strict: getEnvAsBool("SCHEMA_STRICT", false),
		},
		PostgreSQL: PostgreSQLConfig{
			// 优先使用完整的 DSN (DATABASE_URL, POSTGRESQL_URI, PG_DSN)
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "scoring"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 4),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 1),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.Model.Source {
	case ModelSourceFile:
		if c.Model.Path == "" {
			return fmt.Errorf("MODEL_PATH is required when MODEL_SOURCE=%s", ModelSourceFile)
		}
	case ModelSourcePostgres:
		if c.Model.Name == "" {
			return fmt.Errorf("MODEL_NAME is required when MODEL_SOURCE=%s", ModelSourcePostgres)
		}
	default:
		return fmt.Errorf("unsupported MODEL_SOURCE %q (want %s or %s)", c.Model.Source, ModelSourceFile, ModelSourcePostgres)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q (want json or console)", c.Logging.Format)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	// 优先使用完整的 DSN
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	// 否则从各个字段组装 DSN
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// SplitList splits a comma separated setting, dropping empty items
func SplitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}
