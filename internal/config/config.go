package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	RateLimit    RateLimitConfig
	Storage      StorageConfig
	Enrichment   EnrichmentConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	BaseURL               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values and cache tuning.
type RedisConfig struct {
	Addr             string
	Password         string
	DB               int
	RecommendTTLSecs int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret               string
	AccessTokenTTLMinutes   int
	PasswordResetTTLMinutes int
	BcryptCost              int
}

// RateLimitConfig throttles inbound traffic per client IP.
type RateLimitConfig struct {
	AuthMaxRequests int
	APIMaxRequests  int
	WindowMinutes   int
}

// StorageConfig locates the deal-locker blob store.
type StorageConfig struct {
	BlobDir     string
	MaxFileSize int64
}

// EnrichmentConfig drives the background enrichment worker.
type EnrichmentConfig struct {
	Enabled             bool
	PollIntervalSeconds int
	BatchSize           int
	JobTimeoutSeconds   int
	CompaniesHouseKey   string
	CompaniesHouseURL   string
	NewsAPIKey          string
	NewsAPIURL          string
}

// NotificationConfig holds outbound notification settings.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "syndicate-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			BaseURL:               getEnv("APP_URL", "http://localhost:3000"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:             getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:         os.Getenv("REDIS_PASSWORD"),
			DB:               redisDB,
			RecommendTTLSecs: getEnvAsInt("RECOMMEND_CACHE_TTL_SECONDS", 60),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:               getEnv("JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes:   getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 7*24*60),
			PasswordResetTTLMinutes: getEnvAsInt("AUTH_PASSWORD_RESET_TTL_MINUTES", 60),
			BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		RateLimit: RateLimitConfig{
			AuthMaxRequests: getEnvAsInt("RATE_LIMIT_AUTH_MAX", 5),
			APIMaxRequests:  getEnvAsInt("RATE_LIMIT_API_MAX", 100),
			WindowMinutes:   getEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 15),
		},
		Storage: StorageConfig{
			BlobDir:     getEnv("BLOB_DIR", "data/blobs"),
			MaxFileSize: int64(getEnvAsInt("BLOB_MAX_FILE_SIZE_BYTES", 50*1024*1024)),
		},
		Enrichment: EnrichmentConfig{
			Enabled:             getEnvAsBool("ENRICHMENT_ENABLED", false),
			PollIntervalSeconds: getEnvAsInt("ENRICHMENT_POLL_INTERVAL_SECONDS", 60),
			BatchSize:           getEnvAsInt("ENRICHMENT_BATCH_SIZE", 10),
			JobTimeoutSeconds:   getEnvAsInt("ENRICHMENT_JOB_TIMEOUT_SECONDS", 30),
			CompaniesHouseKey:   os.Getenv("COMPANIES_HOUSE_API_KEY"),
			CompaniesHouseURL:   getEnv("COMPANIES_HOUSE_API_URL", "https://api.company-information.service.gov.uk"),
			NewsAPIKey:          os.Getenv("NEWS_API_KEY"),
			NewsAPIURL:          getEnv("NEWS_API_URL", "https://newsapi.org/v2"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@syndicate.plus"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Window returns the rate-limit window duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMinutes) * time.Minute
}

// RecommendTTL returns how long recommendation results stay cached.
func (r RedisConfig) RecommendTTL() time.Duration {
	return time.Duration(r.RecommendTTLSecs) * time.Second
}

// PollInterval returns the worker poll cadence.
func (e EnrichmentConfig) PollInterval() time.Duration {
	return time.Duration(e.PollIntervalSeconds) * time.Second
}

// JobTimeout bounds a single enrichment job.
func (e EnrichmentConfig) JobTimeout() time.Duration {
	return time.Duration(e.JobTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
