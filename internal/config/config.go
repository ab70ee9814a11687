package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Nest-Microservices-dTv/payments-ms/internal/event"
	"github.com/joho/godotenv"
)

type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

type Config struct {
	Environment Environment
	Port        string

	StripeSecretKey     string
	StripeSuccessURL    string
	StripeCancelURL     string
	StripeWebhookSecret string

	KafkaBrokers   string
	PaymentTopic   string
	PublishTimeout time.Duration

	// DatabaseURL enables the payment ledger when set.
	DatabaseURL string

	// RedisURL enables rate limiting on the session endpoint when set.
	RedisURL  string
	RateLimit int
}

func Load() (*Config, error) {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			if err := godotenv.Load("../../.env"); err != nil {
				if env == "development" {
					return nil, fmt.Errorf("failed to load .env file: %w", err)
				}
			}
		}
	}

	cfg := &Config{
		Environment: Environment(env),
		Port:        getEnv("PORT", "3003"),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeSuccessURL:    getEnv("STRIPE_SUCCESS_URL", ""),
		StripeCancelURL:     getEnv("STRIPE_CANCEL_URL", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		KafkaBrokers:   getEnv("KAFKA_BROKERS", ""),
		PaymentTopic:   getEnv("PAYMENT_TOPIC", event.TopicPaymentSucceeded),
		PublishTimeout: getEnvAsDuration("PUBLISH_TIMEOUT", 5*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:  getEnv("REDIS_URL", ""),
		RateLimit: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate refuses to run without the processor credentials, redirect URLs
// and bus address. A missing webhook secret would make every signature check
// fail open or closed in surprising ways, so it is checked up front.
func (c *Config) Validate() error {
	if c.StripeSecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if c.StripeSuccessURL == "" {
		return fmt.Errorf("STRIPE_SUCCESS_URL is required")
	}
	if c.StripeCancelURL == "" {
		return fmt.Errorf("STRIPE_CANCEL_URL is required")
	}
	if c.StripeWebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if c.KafkaBrokers == "" {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.PublishTimeout <= 0 {
		return fmt.Errorf("PUBLISH_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
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
		return defaultValue
	}

	return value
}
