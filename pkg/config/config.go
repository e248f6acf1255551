package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Driver names shared by the cache and session store settings.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Env  string
	Port int

	// ShowErrorDetail exposes raw errors and stacks in the fallback view.
	ShowErrorDetail bool
	EnableMetrics   bool
	EnableDocs      bool

	Services ServicesConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Session  SessionConfig
	Search   SearchConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServicesConfig holds the base URLs of the three platform backends.
type ServicesConfig struct {
	AuthURL     string
	UserURL     string
	PlatformURL string
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

// CacheConfig selects the query cache store.
type CacheConfig struct {
	Driver string
	TTL    time.Duration
}

// SessionConfig selects where console credentials are persisted.
type SessionConfig struct {
	Driver     string
	CookieName string
	TTL        time.Duration
	// PurgeInterval is how often expired postgres credentials are deleted.
	PurgeInterval time.Duration
}

// SearchConfig tunes search-as-you-type.
type SearchConfig struct {
	Debounce  time.Duration
	MinLength int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
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
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.ShowErrorDetail = boolOr(v, "SHOW_ERROR_DETAIL", cfg.Env != EnvProduction)
	cfg.EnableMetrics = v.GetBool("ENABLE_METRICS")
	cfg.EnableDocs = boolOr(v, "ENABLE_DOCS", cfg.Env != EnvProduction)

	cfg.Services = ServicesConfig{
		AuthURL:     strings.TrimRight(v.GetString("AUTH_SERVICE_URL"), "/"),
		UserURL:     strings.TrimRight(v.GetString("USER_SERVICE_URL"), "/"),
		PlatformURL: strings.TrimRight(v.GetString("PLATFORM_SERVICE_URL"), "/"),
	}

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

	cfg.Cache = CacheConfig{
		Driver: strings.ToLower(v.GetString("CACHE_DRIVER")),
		TTL:    parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	cfg.Session = SessionConfig{
		Driver:        strings.ToLower(v.GetString("SESSION_DRIVER")),
		CookieName:    v.GetString("SESSION_COOKIE"),
		TTL:           parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		PurgeInterval: parseDuration(v.GetString("SESSION_PURGE_INTERVAL"), time.Hour),
	}

	minLength := v.GetInt("SEARCH_MIN_LENGTH")
	if minLength < 0 {
		minLength = 0
	}
	cfg.Search = SearchConfig{
		Debounce:  parseDuration(v.GetString("SEARCH_DEBOUNCE"), 300*time.Millisecond),
		MinLength: minLength,
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("ENABLE_METRICS", true)

	v.SetDefault("AUTH_SERVICE_URL", "http://localhost:4001")
	v.SetDefault("USER_SERVICE_URL", "http://localhost:4002")
	v.SetDefault("PLATFORM_SERVICE_URL", "http://localhost:4003")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "sms_console")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CACHE_DRIVER", DriverMemory)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("SESSION_DRIVER", DriverMemory)
	v.SetDefault("SESSION_COOKIE", "sms_console_sid")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_PURGE_INTERVAL", "1h")

	v.SetDefault("SEARCH_DEBOUNCE", "300ms")
	v.SetDefault("SEARCH_MIN_LENGTH", 2)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// boolOr reads a boolean that falls back to an environment-derived value when unset.
func boolOr(v *viper.Viper, key string, fallback bool) bool {
	if !v.IsSet(key) || strings.TrimSpace(v.GetString(key)) == "" {
		return fallback
	}
	return v.GetBool(key)
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
