package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	JWT      JWTConfig
	Terminal TerminalConfig
	Receipt  ReceiptConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// BackendConfig points at the booking backend REST API
type BackendConfig struct {
	BaseURL  string
	Timeout  time.Duration
	APIToken string
}

// JWTConfig holds the key used to verify session tokens issued by the
// identity provider
type JWTConfig struct {
	Secret string
}

type TerminalConfig struct {
	ID                     string
	PrintStorePath         string
	CatalogRefreshInterval time.Duration
	Location               *time.Location
}

type ReceiptConfig struct {
	Width           int
	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment only")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8081"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// Backend configuration
	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		BaseURL:  getEnv("BACKEND_BASE_URL", ""),
		Timeout:  backendTimeout,
		APIToken: getEnv("BACKEND_API_TOKEN", ""),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Terminal configuration
	refreshInterval, err := time.ParseDuration(getEnv("CATALOG_REFRESH_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_REFRESH_INTERVAL: %w", err)
	}

	location, err := time.LoadLocation(getEnv("TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	config.Terminal = TerminalConfig{
		ID:                     getEnv("TERMINAL_ID", uuid.NewString()),
		PrintStorePath:         getEnv("PRINT_STORE_PATH", "pos-print.db"),
		CatalogRefreshInterval: refreshInterval,
		Location:               location,
	}

	// Receipt configuration
	receiptWidth, err := strconv.Atoi(getEnv("RECEIPT_WIDTH", "58"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECEIPT_WIDTH: %w", err)
	}

	config.Receipt = ReceiptConfig{
		Width:           receiptWidth,
		BusinessName:    getEnv("BUSINESS_NAME", "SMASH ARENA"),
		BusinessAddress: getEnv("BUSINESS_ADDRESS", "Jl. Badminton No. 1"),
		BusinessPhone:   getEnv("BUSINESS_PHONE", "0812-3456-7890"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Receipt.Width != 58 && c.Receipt.Width != 80 {
		return fmt.Errorf("RECEIPT_WIDTH must be 58 or 80")
	}
	if c.Terminal.CatalogRefreshInterval < 0 {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
