package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		BaseURL         string `yaml:"base_url" env:"SERVER_BASE_URL"`
		ReadTimeout     string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	// Migration credentials override the runtime ones when migrating, like DB_MIGRATION_* in
	// the deployment tooling.
	Migration struct {
		User     string `yaml:"user" env:"DB_MIGRATION_USER"`
		Password string `yaml:"password" env:"DB_MIGRATION_PASS"`
	} `yaml:"migration"`

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET_KEY"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
		Audience        string `yaml:"audience" env:"JWT_AUDIENCE"`
		Leeway          string `yaml:"leeway" env:"JWT_LEEWAY"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
	} `yaml:"jwt"`

	Views struct {
		SessionTTL  string `yaml:"session_ttl" env:"VIEW_SESSION_TTL"`
		MaxSessions int    `yaml:"max_sessions" env:"VIEW_MAX_SESSIONS"`
	} `yaml:"views"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Path    string `yaml:"path" env:"METRICS_PATH"`
	} `yaml:"metrics"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a yaml file, an optional .env file next to the working
// directory and finally the process environment. Later sources win.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// godotenv never overrides variables that are already set
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.BaseURL = "http://localhost:8080"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"
	config.Server.ShutdownTimeout = "10s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "programs001"
	config.Database.Password = "password"
	config.Database.DBName = "programs"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.Issuer = "http://127.0.0.1:8000/oauth2"
	config.JWT.Audience = "programs-key"
	config.JWT.Leeway = "1s"
	config.JWT.TokenExpiration = "1h"

	config.Views.SessionTTL = "30m"
	config.Views.MaxSessions = 1000

	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"server read timeout":     config.Server.ReadTimeout,
		"server write timeout":    config.Server.WriteTimeout,
		"server shutdown timeout": config.Server.ShutdownTimeout,
		"JWT leeway":              config.JWT.Leeway,
		"JWT token expiration":    config.JWT.TokenExpiration,
		"view session ttl":        config.Views.SessionTTL,
		"db conn max lifetime":    config.Database.ConnMaxLifetime,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Views.MaxSessions <= 0 {
		return fmt.Errorf("views.max_sessions must be positive")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	return c.connectionString(c.Database.User, c.Database.Password)
}

// GetMigrationConnectionString uses the migration credentials when they are set
func (c *Config) GetMigrationConnectionString() string {
	user, password := c.Database.User, c.Database.Password
	if c.Migration.User != "" {
		user = c.Migration.User
	}
	if c.Migration.Password != "" {
		password = c.Migration.Password
	}
	return c.connectionString(user, password)
}

func (c *Config) connectionString(user, password string) string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user,
		password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
