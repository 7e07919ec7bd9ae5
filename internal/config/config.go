package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all service configuration. It is built once at startup and
// passed into components at construction time.
type Config struct {
	Port string

	// Security
	WebhookSecret string
	AdminUsername string
	AdminPassword string

	// LLM endpoint
	GroqAPIEndpoint string
	GroqAPIKey      string
	GroqModel       string
	LLMTemperature  float64
	LLMMaxTokens    int

	// Risk policy
	HighRiskCountries []string
	HighRiskThreshold float64
	ReviewThreshold   float64

	// Storage
	NotificationsFile string
	DatabaseURL       string // optional, file store is used when empty

	// Optional infrastructure
	RedisURL       string
	KafkaBrokers   string
	NatsURL        string
	JaegerEndpoint string
}

const (
	DefaultPort              = "8084"
	DefaultGroqEndpoint      = "https://api.groq.com/openai/v1"
	DefaultGroqModel         = "llama-3.1-8b-instant"
	DefaultLLMTemperature    = 0.0
	DefaultLLMMaxTokens      = 500
	DefaultHighRiskThreshold = 0.7
	DefaultReviewThreshold   = 0.3
	DefaultNotificationsFile = "notifications.json"
)

// DefaultHighRiskCountries follows AML/CFT guidance.
var DefaultHighRiskCountries = []string{"RU", "IR", "KP", "VE", "MM"}

// Load reads configuration from the environment, loading a .env file first if
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", DefaultPort),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		GroqAPIEndpoint:   getEnv("GROQ_API_ENDPOINT", DefaultGroqEndpoint),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		GroqModel:         getEnv("GROQ_MODEL", DefaultGroqModel),
		LLMTemperature:    getEnvFloat("LLM_TEMPERATURE", DefaultLLMTemperature),
		LLMMaxTokens:      int(getEnvInt64("LLM_MAX_TOKENS", DefaultLLMMaxTokens)),
		HighRiskCountries: getEnvList("HIGH_RISK_COUNTRIES", DefaultHighRiskCountries),
		HighRiskThreshold: getEnvFloat("HIGH_RISK_THRESHOLD", DefaultHighRiskThreshold),
		ReviewThreshold:   getEnvFloat("REVIEW_THRESHOLD", DefaultReviewThreshold),
		NotificationsFile: getEnv("NOTIFICATIONS_FILE", DefaultNotificationsFile),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		NatsURL:           os.Getenv("NATS_URL"),
		JaegerEndpoint:    os.Getenv("JAEGER_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present and thresholds are
// sane.
func (c *Config) Validate() error {
	if c.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required")
	}
	if c.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME is required")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if c.HighRiskThreshold < 0 || c.HighRiskThreshold > 1 {
		return fmt.Errorf("HIGH_RISK_THRESHOLD must be within [0,1], got %v", c.HighRiskThreshold)
	}
	if c.ReviewThreshold < 0 || c.ReviewThreshold > c.HighRiskThreshold {
		return fmt.Errorf("REVIEW_THRESHOLD must be within [0,HIGH_RISK_THRESHOLD], got %v", c.ReviewThreshold)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvList parses a comma-separated list, trimming whitespace around items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
