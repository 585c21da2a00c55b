package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Database DatabaseConfig
	Store    StoreConfig
	JWT      JWTConfig
	App      AppConfig
	Ledger   LedgerConfig
	Holiday  HolidayConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	ConnectTimeout  time.Duration
}

// StoreConfig selects the bucket store backend.
type StoreConfig struct {
	Driver     string
	SQLitePath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type LedgerConfig struct {
	StrictApproval bool
	// Location is the calendar day keys are taken in.
	Location *time.Location
}

type HolidayConfig struct {
	URL     string
	Timeout time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}
	dbMaxConnLifetime, err := time.ParseDuration(getEnv("DB_MAX_CONN_LIFETIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONN_LIFETIME: %w", err)
	}
	dbConnectTimeout, err := time.ParseDuration(getEnv("DB_CONNECT_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),

		MaxConns:        dbMaxConns,
		MinConns:        dbMinConns,
		MaxConnLifetime: dbMaxConnLifetime,
		ConnectTimeout:  dbConnectTimeout,
	}

	config.Store = StoreConfig{
		Driver:     strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		SQLitePath: getEnv("SQLITE_PATH", "attendance.db"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Ledger configuration
	strict, err := strconv.ParseBool(getEnv("APPROVAL_STRICT", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid APPROVAL_STRICT: %w", err)
	}
	location := time.Local
	if name := getEnv("LEDGER_TIMEZONE", ""); name != "" {
		location, err = time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("invalid LEDGER_TIMEZONE: %w", err)
		}
	}
	config.Ledger = LedgerConfig{
		StrictApproval: strict,
		Location:       location,
	}

	// Holiday calendar configuration
	holidayTimeout, err := time.ParseDuration(getEnv("HOLIDAY_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_TIMEOUT: %w", err)
	}
	config.Holiday = HolidayConfig{
		URL:     getEnv("HOLIDAY_API_URL", ""),
		Timeout: holidayTimeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
		if c.Database.MaxConns < 1 || c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS, and DB_MAX_CONNS at least 1")
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Holiday.URL != "" && !strings.Contains(c.Holiday.URL, "{year}") {
		return fmt.Errorf("HOLIDAY_API_URL must contain {year}")
	}
	if c.Holiday.Timeout <= 0 {
		return fmt.Errorf("HOLIDAY_TIMEOUT must be positive")
	}
	return nil
}

// PoolOptions returns the connection pool settings for the Postgres store.
func (d DatabaseConfig) PoolOptions() database.PoolOptions {
	return database.PoolOptions{
		MaxConns:        int32(d.MaxConns),
		MinConns:        int32(d.MinConns),
		MaxConnLifetime: d.MaxConnLifetime,
		ConnectTimeout:  d.ConnectTimeout,
	}
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
