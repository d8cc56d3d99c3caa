package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrEmptyEnvironmentVariable = errors.New("empty environment variable")
	ErrInvalidMailProvider      = errors.New("invalid mail provider")
	ErrInvalidJobsBackend       = errors.New("invalid jobs backend")
)

const (
	MailProviderResend = "resend"
	MailProviderSES    = "ses"

	JobsBackendAsynq     = "asynq"
	JobsBackendInProcess = "inprocess"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Services ServicesConfig
	Mail     MailConfig
	Redis    RedisConfig
	Jobs     JobsConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string
}

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	StripeSecretKey       string
	StripeWebhookSecret   string
	GoogleTranslateAPIKey string
	WebAppURI             string
	// ReviewBaseURL prefixes recipient review tokens in campaign emails.
	ReviewBaseURL string
}

// MailConfig selects and configures the outbound email provider
type MailConfig struct {
	Provider            string
	DefaultSender       string
	ResendAPIKey        string
	ResendClickTracking bool
	SESRegion           string
	SESAccessKey        string
	SESSecretKey        string
	SESConfigurationSet string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// JobsConfig holds background job settings
type JobsConfig struct {
	Backend           string
	DispatchWorkers   int
	DispatchQueueSize int
	SendConcurrency   int
	SendTimeout       time.Duration
	SweepInterval     time.Duration
	SweepCron         string
	// ReviewRequestDelay is how long after shipment an order's review
	// request email goes out.
	ReviewRequestDelay    time.Duration
	ReviewRequestInterval time.Duration
	ReviewRequestCron     string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	cfg.Services.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Services.StripeWebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	cfg.Services.GoogleTranslateAPIKey = os.Getenv("GOOGLE_TRANSLATE_API_KEY")
	cfg.Services.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")
	if cfg.Services.ReviewBaseURL, err = requireEnv("REVIEW_BASE_URL"); err != nil {
		return nil, err
	}

	if err := loadMail(cfg); err != nil {
		return nil, err
	}
	if err := loadRedis(cfg); err != nil {
		return nil, err
	}
	if err := loadJobs(cfg); err != nil {
		return nil, err
	}

	cfg.Server.Port, err = strconv.Atoi(getEnvWithDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

func loadMail(cfg *Config) error {
	var err error
	cfg.Mail.Provider = getEnvWithDefault("MAIL_PROVIDER", MailProviderResend)
	if cfg.Mail.DefaultSender, err = requireEnv("DEFAULT_EMAIL_SENDER_ADDRESS"); err != nil {
		return err
	}

	switch cfg.Mail.Provider {
	case MailProviderResend:
		if cfg.Mail.ResendAPIKey, err = requireEnv("RESEND_API_KEY"); err != nil {
			return err
		}
		// Resend sets click tracking on the sending domain, not per message.
		if cfg.Mail.ResendClickTracking, err = strconv.ParseBool(getEnvWithDefault("RESEND_CLICK_TRACKING", "false")); err != nil {
			return fmt.Errorf("failed to parse RESEND_CLICK_TRACKING: %w", err)
		}
	case MailProviderSES:
		cfg.Mail.SESRegion = getEnvWithDefault("SES_REGION", "eu-central-1")
		cfg.Mail.SESAccessKey = os.Getenv("SES_ACCESS_KEY_ID")
		cfg.Mail.SESSecretKey = os.Getenv("SES_SECRET_ACCESS_KEY")
		cfg.Mail.SESConfigurationSet = os.Getenv("SES_CONFIGURATION_SET")
	default:
		return fmt.Errorf("%s: %w", cfg.Mail.Provider, ErrInvalidMailProvider)
	}
	return nil
}

func loadRedis(cfg *Config) error {
	var err error
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.Port, err = strconv.Atoi(getEnvWithDefault("REDIS_PORT", "6379")); err != nil {
		return fmt.Errorf("failed to parse REDIS_PORT: %w", err)
	}
	if cfg.Redis.DB, err = strconv.Atoi(getEnvWithDefault("REDIS_DB", "0")); err != nil {
		return fmt.Errorf("failed to parse REDIS_DB: %w", err)
	}
	if cfg.Redis.Enabled, err = strconv.ParseBool(getEnvWithDefault("REDIS_ENABLED", "true")); err != nil {
		return fmt.Errorf("failed to parse REDIS_ENABLED: %w", err)
	}
	return nil
}

func loadJobs(cfg *Config) error {
	var err error
	cfg.Jobs.Backend = getEnvWithDefault("JOBS_BACKEND", JobsBackendAsynq)
	if cfg.Jobs.Backend != JobsBackendAsynq && cfg.Jobs.Backend != JobsBackendInProcess {
		return fmt.Errorf("%s: %w", cfg.Jobs.Backend, ErrInvalidJobsBackend)
	}
	if cfg.Jobs.Backend == JobsBackendAsynq && !cfg.Redis.Enabled {
		return fmt.Errorf("asynq backend requires redis: %w", ErrInvalidJobsBackend)
	}

	if cfg.Jobs.DispatchWorkers, err = strconv.Atoi(getEnvWithDefault("DISPATCH_WORKERS", "4")); err != nil {
		return fmt.Errorf("failed to parse DISPATCH_WORKERS: %w", err)
	}
	if cfg.Jobs.DispatchQueueSize, err = strconv.Atoi(getEnvWithDefault("DISPATCH_QUEUE_SIZE", "100")); err != nil {
		return fmt.Errorf("failed to parse DISPATCH_QUEUE_SIZE: %w", err)
	}
	if cfg.Jobs.SendConcurrency, err = strconv.Atoi(getEnvWithDefault("SEND_CONCURRENCY", "10")); err != nil {
		return fmt.Errorf("failed to parse SEND_CONCURRENCY: %w", err)
	}
	if cfg.Jobs.SendTimeout, err = time.ParseDuration(getEnvWithDefault("SEND_TIMEOUT", "15s")); err != nil {
		return fmt.Errorf("failed to parse SEND_TIMEOUT: %w", err)
	}
	if cfg.Jobs.SweepInterval, err = time.ParseDuration(getEnvWithDefault("SWEEP_INTERVAL", "1h")); err != nil {
		return fmt.Errorf("failed to parse SWEEP_INTERVAL: %w", err)
	}
	cfg.Jobs.SweepCron = getEnvWithDefault("SWEEP_CRON", "@hourly")

	if cfg.Jobs.ReviewRequestDelay, err = time.ParseDuration(getEnvWithDefault("REVIEW_REQUEST_DELAY", "120h")); err != nil {
		return fmt.Errorf("failed to parse REVIEW_REQUEST_DELAY: %w", err)
	}
	if cfg.Jobs.ReviewRequestInterval, err = time.ParseDuration(getEnvWithDefault("REVIEW_REQUEST_INTERVAL", "1h")); err != nil {
		return fmt.Errorf("failed to parse REVIEW_REQUEST_INTERVAL: %w", err)
	}
	cfg.Jobs.ReviewRequestCron = getEnvWithDefault("REVIEW_REQUEST_CRON", "0 8 * * *")
	return nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// Addr returns the host:port pair used by go-redis and asynq
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
