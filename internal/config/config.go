package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	WalletStorePostgres = "postgres"
	WalletStoreMongoDB  = "mongodb"
)

type Config struct {
	Database   DatabaseConfig
	Mongo      MongoConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds scan and payroll settings
type AttendanceConfig struct {
	WalletStore       string
	DefaultHourlyRate decimal.Decimal
	ReportTimezone    string
	StrictAlternation bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "scan-attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Mongo = MongoConfig{
		URI:      getEnv("MONGO_URI", ""),
		Database: getEnv("MONGO_DATABASE", "trend-seer"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "168h"),
	}

	// Attendance configuration
	hourlyRate, err := decimal.NewFromString(getEnv("DEFAULT_HOURLY_RATE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_HOURLY_RATE: %w", err)
	}
	strict, err := strconv.ParseBool(getEnv("SCAN_STRICT_ALTERNATION", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCAN_STRICT_ALTERNATION: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WalletStore:       strings.ToLower(getEnv("WALLET_STORE", WalletStorePostgres)),
		DefaultHourlyRate: hourlyRate,
		ReportTimezone:    getEnv("REPORT_TIMEZONE", "UTC"),
		StrictAlternation: strict,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	switch c.Attendance.WalletStore {
	case WalletStorePostgres:
	case WalletStoreMongoDB:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when WALLET_STORE is mongodb")
		}
	default:
		return fmt.Errorf("unsupported WALLET_STORE: %s", c.Attendance.WalletStore)
	}

	if !c.Attendance.DefaultHourlyRate.IsPositive() {
		return fmt.Errorf("DEFAULT_HOURLY_RATE must be positive")
	}
	if _, err := time.LoadLocation(c.Attendance.ReportTimezone); err != nil {
		return fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}
	return nil
}

// IsDevelopment reports whether development-only routes are enabled.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// ReportLocation returns the zone used to derive work-log day keys.
func (c *Config) ReportLocation() *time.Location {
	loc, err := time.LoadLocation(c.Attendance.ReportTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
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

// LogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// AccessTokenLifetime returns the parsed JWT_ACCESS_EXPIRATION_TIME.
func (c *Config) AccessTokenLifetime() time.Duration {
	d, err := time.ParseDuration(c.JWT.AccessExpiration)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}
