package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"parcels/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	RedisURL          string
	RateSourceURL     string
	RateCacheTTL      time.Duration
	RateFetchTimeout  time.Duration
	PricingSchedule   string
	SessionTTL        time.Duration
	SecureCookies     bool
	RegisterRateLimit float64
}

// LoadConfig reads the configuration from the environment after loading an optional
// .env file from the working directory. Variables already set in the environment win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var errList []error
	config := Config{
		HTTPPort:         envOr("HTTP_PORT", "8080"),
		DBHost:           envOr("DB_HOST", "localhost"),
		DBPort:           envOr("DB_PORT", "5432"),
		DBUser:           envOr("DB_USER", "postgres"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           envOr("DB_NAME", "parcels"),
		DBSslMode:        envOr("DB_SSLMODE", "disable"),
		RedisURL:         os.Getenv("REDIS_URL"),
		RateSourceURL:    envOr("RATE_SOURCE_URL", "https://www.cbr-xml-daily.ru/daily_json.js"),
		RateCacheTTL:     durationEnv("RATE_CACHE_TTL", 5*time.Minute, &errList),
		RateFetchTimeout: durationEnv("RATE_FETCH_TIMEOUT", 10*time.Second, &errList),
		PricingSchedule:  envOr("PRICING_SCHEDULE", "@every 1m"),
		SessionTTL:       durationEnv("SESSION_TTL", 14*24*time.Hour, &errList),
		SecureCookies:    boolEnv("SECURE_COOKIES", false, &errList),
	}

	config.RegisterRateLimit = 5
	if raw := os.Getenv("REGISTER_RATE_LIMIT"); raw != "" {
		limit, err := strconv.ParseFloat(raw, 64)
		if err != nil || limit < 0 {
			errList = append(errList, fmt.Errorf("REGISTER_RATE_LIMIT: invalid value %q", raw))
		}
		config.RegisterRateLimit = limit
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Postgres returns the database settings.
func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration, errList *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		*errList = append(*errList, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return d
}

func boolEnv(key string, fallback bool, errList *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		*errList = append(*errList, fmt.Errorf("%s: invalid boolean %q", key, raw))
		return fallback
	}
	return b
}
