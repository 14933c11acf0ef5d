package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type AppConfig struct {
	Port   string
	Store  StoreConfig
	Logger LoggerConfig
	Admin  AdminConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Images ImageConfig
}

type StoreConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	PostgresURL   string
}

type LoggerConfig struct {
	Mode     string // "production" or "development"
	Filename string
}

type AdminConfig struct {
	DefaultUsername string
	DefaultPassword string
	Guard           bool
	JWTSecret       string
	TokenTTL        time.Duration
}

type RedisConfig struct {
	URL                string
	InquiryHourlyLimit int
}

// SMTPConfig is left empty when inquiries should not be mailed anywhere.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	NotifyTo string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.NotifyTo != ""
}

type ImageConfig struct {
	CacheTTL      time.Duration
	CacheMaxBytes int64
	// CachePrune is the cron schedule that drops expired cache entries.
	CachePrune    string
	GCSchedule    string
	GCGrace       time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() *AppConfig {
	_ = godotenv.Load()

	return &AppConfig{
		Port: envOrDefault("PORT", "5000"),
		Store: StoreConfig{
			Driver:        strings.ToLower(envOrDefault("STORE_DRIVER", StoreMongo)),
			MongoURI:      os.Getenv("MONGODB_URI"),
			MongoDatabase: envOrDefault("MONGODB_DATABASE", "hibiscus_holiday"),
			PostgresURL:   os.Getenv("POSTGRES_URL"),
		},
		Logger: LoggerConfig{
			Mode:     envOrDefault("LOG_MODE", "development"),
			Filename: os.Getenv("LOG_FILE"),
		},
		Admin: AdminConfig{
			DefaultUsername: envOrDefault("ADMIN_DEFAULT_USERNAME", "admin"),
			DefaultPassword: envOrDefault("ADMIN_DEFAULT_PASSWORD", "hibiscus2025"),
			Guard:           cast.ToBool(os.Getenv("ADMIN_GUARD")),
			JWTSecret:       os.Getenv("JWT_SECRET"),
			TokenTTL:        durationOrDefault("ADMIN_TOKEN_TTL", 12*time.Hour),
		},
		Redis: RedisConfig{
			URL:                os.Getenv("REDIS_URL"),
			InquiryHourlyLimit: cast.ToInt(envOrDefault("INQUIRY_HOURLY_LIMIT", "10")),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     cast.ToInt(envOrDefault("SMTP_PORT", "587")),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envOrDefault("SMTP_FROM", os.Getenv("SMTP_USERNAME")),
			FromName: envOrDefault("SMTP_FROM_NAME", "Hibiscus Holidays"),
			NotifyTo: os.Getenv("INQUIRY_NOTIFY_TO"),
		},
		Images: ImageConfig{
			CacheTTL:      durationOrDefault("IMAGE_CACHE_TTL", time.Hour),
			CacheMaxBytes: cast.ToInt64(envOrDefault("IMAGE_CACHE_MAX_BYTES", "268435456")),
			CachePrune:    envOrDefault("IMAGE_CACHE_PRUNE", "@every 5m"),
			GCSchedule:    os.Getenv("IMAGE_GC_SCHEDULE"),
			GCGrace:       durationOrDefault("IMAGE_GC_GRACE", 24*time.Hour),
		},
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	d, err := cast.ToDurationE(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
