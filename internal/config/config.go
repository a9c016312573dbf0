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

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	ERP      ERPConfig
	Snapshot SnapshotConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// ERPConfig holds the external HR system connection settings.
type ERPConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SnapshotConfig controls the today-snapshot refresher.
type SnapshotConfig struct {
	RefreshInterval time.Duration
	// Employee IDs registered for testing hardware; excluded from the
	// today register and from relay runs.
	ExcludedEmployeeIDs []int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
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
		Name:     getEnv("DB_NAME", "checkin"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// ERP configuration
	erpTimeout, err := time.ParseDuration(getEnv("ERP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ERP_TIMEOUT: %w", err)
	}

	config.ERP = ERPConfig{
		BaseURL: getEnv("ERP_BASE_URL", ""),
		Timeout: erpTimeout,
	}

	// Snapshot refresher configuration
	refreshInterval, err := time.ParseDuration(getEnv("SNAPSHOT_REFRESH_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_REFRESH_INTERVAL: %w", err)
	}

	excludedIDs, err := getEnvIntSlice("EXCLUDED_EMPLOYEE_IDS")
	if err != nil {
		return nil, fmt.Errorf("invalid EXCLUDED_EMPLOYEE_IDS: %w", err)
	}

	config.Snapshot = SnapshotConfig{
		RefreshInterval:     refreshInterval,
		ExcludedEmployeeIDs: excludedIDs,
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
	if c.ERP.BaseURL == "" {
		return fmt.Errorf("ERP_BASE_URL is required")
	}
	if c.Snapshot.RefreshInterval <= 0 {
		return fmt.Errorf("SNAPSHOT_REFRESH_INTERVAL must be positive")
	}
	return nil
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

func getEnvIntSlice(env string) ([]int, error) {
	value := getEnv(env, "")
	if value == "" {
		return nil, nil
	}
	var result []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}
