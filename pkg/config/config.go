package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Past-edit policy values accepted by AVAILABILITY_PAST_EDIT_POLICY.
const (
	PastEditForbid      = "forbid"
	PastEditAllowWithin = "allow_within_days"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	Cache        CacheConfig
	Availability AvailabilityConfig
	Outbox       OutboxConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig tunes the two availability cache namespaces.
type CacheConfig struct {
	Enabled bool
	DayTTL  time.Duration
	WeekTTL time.Duration
}

// AvailabilityConfig governs week-write guardrails and engine behaviour.
// The engine receives this struct explicitly at construction; there is no
// process-wide toggle.
type AvailabilityConfig struct {
	PastEditPolicy     string
	PastEditWindowDays int
	SlotMinutes        int
	AuditEnabled       bool
	DefaultTimezone    string
}

// OutboxConfig controls the background outbox relay.
type OutboxConfig struct {
	Enabled      bool
	PollInterval time.Duration
	BatchSize    int
	Workers      int
	MaxRetries   int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		DayTTL:  parseDuration(v.GetString("CACHE_DAY_TTL"), 10*time.Minute),
		WeekTTL: parseDuration(v.GetString("CACHE_WEEK_TTL"), 10*time.Minute),
	}

	cfg.Availability = AvailabilityConfig{
		PastEditPolicy:     strings.ToLower(v.GetString("AVAILABILITY_PAST_EDIT_POLICY")),
		PastEditWindowDays: v.GetInt("AVAILABILITY_PAST_EDIT_WINDOW_DAYS"),
		SlotMinutes:        v.GetInt("AVAILABILITY_SLOT_MINUTES"),
		AuditEnabled:       v.GetBool("AVAILABILITY_AUDIT_ENABLED"),
		DefaultTimezone:    v.GetString("AVAILABILITY_DEFAULT_TIMEZONE"),
	}

	cfg.Outbox = OutboxConfig{
		Enabled:      v.GetBool("OUTBOX_ENABLED"),
		PollInterval: parseDuration(v.GetString("OUTBOX_POLL_INTERVAL"), 5*time.Second),
		BatchSize:    v.GetInt("OUTBOX_BATCH_SIZE"),
		Workers:      v.GetInt("OUTBOX_WORKERS"),
		MaxRetries:   v.GetInt("OUTBOX_MAX_RETRIES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "instructly")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("CACHE_DAY_TTL", "10m")
	v.SetDefault("CACHE_WEEK_TTL", "10m")

	v.SetDefault("AVAILABILITY_PAST_EDIT_POLICY", PastEditForbid)
	v.SetDefault("AVAILABILITY_PAST_EDIT_WINDOW_DAYS", 0)
	v.SetDefault("AVAILABILITY_SLOT_MINUTES", 30)
	v.SetDefault("AVAILABILITY_AUDIT_ENABLED", true)
	v.SetDefault("AVAILABILITY_DEFAULT_TIMEZONE", "UTC")

	v.SetDefault("OUTBOX_ENABLED", true)
	v.SetDefault("OUTBOX_POLL_INTERVAL", "5s")
	v.SetDefault("OUTBOX_BATCH_SIZE", 50)
	v.SetDefault("OUTBOX_WORKERS", 2)
	v.SetDefault("OUTBOX_MAX_RETRIES", 3)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
