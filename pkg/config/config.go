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

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Roster    RosterConfig
	Sync      SyncConfig
	Dashboard DashboardConfig
	Exports   ExportsConfig
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

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RosterConfig describes the known students used when seeding fallback data.
type RosterConfig struct {
	Students        []string
	AssignmentLabel string
}

// SyncConfig tunes the remote flush behaviour of the sync coordinators.
type SyncConfig struct {
	FlushWorkers    int
	FlushRetries    int
	FlushRetryDelay time.Duration
	SeedRemote      bool
	NotifyBuffer    int
}

// DashboardConfig carries viewer-facing defaults.
type DashboardConfig struct {
	DefaultRole string
}

// ExportsConfig toggles weekly report exports.
type ExportsConfig struct {
	Enabled bool
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

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Roster = RosterConfig{
		Students:        splitAndTrim(v.GetString("ROSTER_STUDENTS")),
		AssignmentLabel: v.GetString("ROSTER_ASSIGNMENT_LABEL"),
	}

	cfg.Sync = SyncConfig{
		FlushWorkers:    v.GetInt("SYNC_FLUSH_WORKERS"),
		FlushRetries:    v.GetInt("SYNC_FLUSH_RETRIES"),
		FlushRetryDelay: parseDuration(v.GetString("SYNC_FLUSH_RETRY_DELAY"), 2*time.Second),
		SeedRemote:      v.GetBool("SYNC_SEED_REMOTE"),
		NotifyBuffer:    v.GetInt("SYNC_NOTIFY_BUFFER"),
	}

	cfg.Dashboard = DashboardConfig{
		DefaultRole: v.GetString("DASHBOARD_DEFAULT_ROLE"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
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
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "classpulse")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ROSTER_STUDENTS", "Alice Johnson,Bob Smith,Carol White,David Brown,Emma Davis,Frank Miller")
	v.SetDefault("ROSTER_ASSIGNMENT_LABEL", "Math Quiz 1")

	v.SetDefault("SYNC_FLUSH_WORKERS", 1)
	v.SetDefault("SYNC_FLUSH_RETRIES", 1)
	v.SetDefault("SYNC_FLUSH_RETRY_DELAY", "2s")
	v.SetDefault("SYNC_SEED_REMOTE", true)
	v.SetDefault("SYNC_NOTIFY_BUFFER", 50)

	v.SetDefault("DASHBOARD_DEFAULT_ROLE", "teacher")
	v.SetDefault("ENABLE_EXPORTS", true)
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
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
