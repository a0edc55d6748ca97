package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Env  string
	Port int

	StoreDriver        string
	MongoURI           string
	MongoDatabase      string
	MongoEnsureIndexes bool

	JWTSecret    string
	JWTExpiresIn time.Duration

	CORSAllowedOrigins []string
	MaxBodyBytes       int64

	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OTelEndpoint string
	ServiceName  string

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads a local .env (if any) and then the process environment.
func Load() (Config, error) {
	err := godotenv.Load()

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return FromEnv()
}

func FromEnv() (Config, error) {
	expiresIn, err := ParseExpiresIn(getEnv("EXPIRES_IN", "1h"))

	if err != nil {
		return Config{}, fmt.Errorf("EXPIRES_IN: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "0s"))

	if err != nil {
		return Config{}, fmt.Errorf("CACHE_TTL: %w", err)
	}

	cfg := Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 5000),

		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:      getEnv("MONGODB_DATABASE", "protfolioDB"),
		MongoEnsureIndexes: getEnvBool("MONGODB_ENSURE_INDEXES", false),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTExpiresIn: expiresIn,

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 100*1024)),

		CacheTTL:      cacheTTL,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OTelEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  getEnv("SERVICE_NAME", "portfolio-api"),

		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if c.JWTExpiresIn <= 0 {
		return errors.New("EXPIRES_IN must be positive")
	}

	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	return nil
}

// ParseExpiresIn accepts Go durations ("90m"), day counts ("7d") and bare seconds ("3600").
func ParseExpiresIn(raw string) (time.Duration, error) {
	v := strings.TrimSpace(raw)

	if v == "" {
		return 0, errors.New("empty duration")
	}

	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)

		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", raw)
		}

		return time.Duration(n) * 24 * time.Hour, nil
	}

	return time.ParseDuration(v)
}

// WithTimeout bounds a single store or crypto operation within a request.
func WithTimeout(parent context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	return context.WithTimeout(parent, duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("invalid integer env, using default", "key", key, "value", v, "default", fallback)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)

		if err != nil {
			slog.Warn("invalid boolean env, using default", "key", key, "value", v, "default", fallback)
			return fallback
		}

		return b
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
