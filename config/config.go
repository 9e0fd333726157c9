package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	DBURL               string
	JWTSecret           string
	TokenTTL            time.Duration
	Port                string
	LogLevel            string
	Env                 string // dev|prod
	SentryDSN           string
	RedisAddr           string
	RedisPassword       string
	CORSAllowedOrigins  []string
	SeedDefaultUsers    bool
	StrictPostOwnership bool
}

func Load() (*Config, error) {
	ttl, err := getDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	seed, err := getBool("SEED_DEFAULT_USERS", true)
	if err != nil {
		return nil, err
	}
	strict, err := getBool("STRICT_POST_OWNERSHIP", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBName:              getEnv("DB_NAME", "blog_aulas"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		DBURL:               os.Getenv("DATABASE_URL"),
		JWTSecret:           getEnv("JWT_SECRET", "default-secret"),
		TokenTTL:            ttl,
		Port:                getEnv("PORT", "4000"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Env:                 getEnv("ENV", "dev"),
		SentryDSN:           os.Getenv("SENTRY_DSN"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		CORSAllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SeedDefaultUsers:    seed,
		StrictPostOwnership: strict,
	}

	if cfg.IsProd() && os.Getenv("JWT_SECRET") == "" {
		return nil, errors.New("JWT_SECRET: required when ENV=prod")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.Errorf("TOKEN_TTL: must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

func (c *Config) IsProd() bool {
	return strings.ToLower(c.Env) == "prod"
}

func (c *Config) DatabaseURL() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrap(err, key)
	}
	return d, nil
}

func getBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrap(err, key)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
