package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Upstream UpstreamConfig
	Report   ReportConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds the secret used to verify access tokens issued by the HRIS
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

// UpstreamConfig describes the HRIS API that owns attendance and holidays
type UpstreamConfig struct {
	BaseURL      string
	Token        string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
	Timeout      time.Duration
	RetryCount   int
	RetryDelay   time.Duration
}

// ReportConfig controls where reports read records from
type ReportConfig struct {
	// Source is "upstream" or "snapshot"
	Source        string
	AttachHoliday bool
}

// CronConfig controls the snapshot jobs
type CronConfig struct {
	Enabled          bool
	SyncInterval     time.Duration
	SyncLookbackDays int
	RetentionDays    int
}

const (
	SourceUpstream = "upstream"
	SourceSnapshot = "snapshot"
)

func Load() (*Config, error) {
	// .env is optional in containers where the environment is injected
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Enabled:  getEnvBool("DB_ENABLED", false),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_duty_report"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
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
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Upstream HRIS API configuration
	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	retryCount, err := strconv.Atoi(getEnv("UPSTREAM_RETRY_COUNT", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_RETRY_COUNT: %w", err)
	}
	retryDelay, err := time.ParseDuration(getEnv("UPSTREAM_RETRY_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_RETRY_DELAY: %w", err)
	}

	config.Upstream = UpstreamConfig{
		BaseURL:      strings.TrimRight(getEnv("UPSTREAM_BASE_URL", ""), "/"),
		Token:        getEnv("UPSTREAM_TOKEN", ""),
		ClientID:     getEnv("UPSTREAM_CLIENT_ID", ""),
		ClientSecret: getEnv("UPSTREAM_CLIENT_SECRET", ""),
		TokenURL:     getEnv("UPSTREAM_TOKEN_URL", ""),
		Scopes:       getEnvSlice("UPSTREAM_SCOPES", ""),
		Timeout:      timeout,
		RetryCount:   retryCount,
		RetryDelay:   retryDelay,
	}

	// Report configuration
	config.Report = ReportConfig{
		Source:        getEnv("REPORT_SOURCE", SourceUpstream),
		AttachHoliday: getEnvBool("REPORT_ATTACH_HOLIDAYS", true),
	}

	// Cron configuration
	syncInterval, err := time.ParseDuration(getEnv("CRON_SYNC_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_SYNC_INTERVAL: %w", err)
	}
	lookback, err := strconv.Atoi(getEnv("SYNC_LOOKBACK_DAYS", "14"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_LOOKBACK_DAYS: %w", err)
	}
	retention, err := strconv.Atoi(getEnv("SNAPSHOT_RETENTION_DAYS", "400"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_RETENTION_DAYS: %w", err)
	}

	config.Cron = CronConfig{
		Enabled:          getEnvBool("CRON_ENABLED", false),
		SyncInterval:     syncInterval,
		SyncLookbackDays: lookback,
		RetentionDays:    retention,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if (c.Upstream.ClientID == "") != (c.Upstream.ClientSecret == "") {
		return fmt.Errorf("UPSTREAM_CLIENT_ID and UPSTREAM_CLIENT_SECRET must be set together")
	}
	if c.Upstream.ClientID != "" && c.Upstream.TokenURL == "" {
		return fmt.Errorf("UPSTREAM_TOKEN_URL is required with client credentials")
	}
	if c.Upstream.RetryCount < 1 {
		return fmt.Errorf("UPSTREAM_RETRY_COUNT must be at least 1")
	}

	switch c.Report.Source {
	case SourceUpstream:
	case SourceSnapshot:
		if !c.Database.Enabled {
			return fmt.Errorf("REPORT_SOURCE=snapshot requires DB_ENABLED=true")
		}
	default:
		return fmt.Errorf("REPORT_SOURCE must be %q or %q", SourceUpstream, SourceSnapshot)
	}

	if c.Database.Enabled && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Cron.Enabled && !c.Database.Enabled {
		return fmt.Errorf("CRON_ENABLED requires DB_ENABLED=true")
	}
	if c.Cron.SyncLookbackDays < 1 {
		return fmt.Errorf("SYNC_LOOKBACK_DAYS must be at least 1")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (a AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(a.LogLevel) {
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

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
