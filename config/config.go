package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// reCAPTCHA v3 Configuration
	RecaptchaSecret string
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string // Verified sender email (may differ from SMTP login)
	ContactEmailTo string
	// CORS Configuration
	AllowedOrigins []string
	// Redis/Upstash Configuration (optional shared rate-limit backend)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitShortThreshold   int
	RateLimitDailyThreshold   int
	RateLimitDailyWindowHours int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		RecaptchaSecret: getEnv("RECAPTCHA_SECRET_KEY", ""),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// CORS Configuration
		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		// Redis Configuration
		RedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		RedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration. The daily threshold is 25: older
		// docs said "10 emails per day" but the configured value has
		// always been 25, and 25 is authoritative.
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitShortThreshold:   getEnvInt("RATE_LIMIT_SHORT_THRESHOLD", 1),
		RateLimitDailyThreshold:   getEnvInt("RATE_LIMIT_DAILY_THRESHOLD", 25),
		RateLimitDailyWindowHours: getEnvInt("RATE_LIMIT_DAILY_WINDOW_HOURS", 24),
	}

	// Warn early about missing credentials instead of failing per-request
	if cfg.RecaptchaSecret == "" {
		log.Println("WARNING: RECAPTCHA_SECRET_KEY not configured. All submissions will be rejected by the bot check.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory counters.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// splitAndTrim parses a comma-separated list, dropping empties and any
// trailing slash so origin matching is exact.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimRight(strings.TrimSpace(p), "/")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
