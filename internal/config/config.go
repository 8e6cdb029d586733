package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	Server struct {
		Address         string        `yaml:"address"`
		Timezone        string        `yaml:"timezone"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		LogLevel        string        `yaml:"log_level"`
	} `yaml:"server"`
	Database struct {
		Driver       string `yaml:"driver"`
		URL          string `yaml:"url"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		Migrations   string `yaml:"migrations"`
	} `yaml:"database"`
	Redis struct {
		Address  string        `yaml:"address"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"redis"`
	JWT struct {
		Secret     string        `yaml:"secret"`
		AccessTTL  time.Duration `yaml:"access_ttl"`
		RefreshTTL time.Duration `yaml:"refresh_ttl"`
	} `yaml:"jwt"`
	Storage struct {
		Endpoint  string `yaml:"endpoint"`
		Region    string `yaml:"region"`
		Bucket    string `yaml:"bucket"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		PublicURL string `yaml:"public_url"`
		MaxSizeMB int    `yaml:"max_size_mb"`
	} `yaml:"storage"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	RateLimit struct {
		PerMinute int `yaml:"per_minute"`
		Burst     int `yaml:"burst"`
	} `yaml:"rate_limit"`
	Ads struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"ads"`
	// Admin is created on startup when no user with Admin.Phone exists.
	Admin struct {
		Name     string `yaml:"name"`
		Phone    string `yaml:"phone"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

// LoadConfig reads the YAML file at path (or CONFIG_PATH / the default location
// when path is empty), applies environment overrides and fills defaults.
// A missing file is not an error: the environment alone may configure the server.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if path == "" {
		path = cast.ToString(getOrReturnDefault("CONFIG_PATH", defaultConfigPath))
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("config: database url is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("config: jwt secret is required")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("config: timezone: %w", err)
	}
	return nil
}

// Location returns the municipality's timezone. Validate guarantees it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
	cfg.Server.Address = cast.ToString(getOrReturnDefault("SERVER_ADDRESS", cfg.Server.Address))
	cfg.Server.Timezone = cast.ToString(getOrReturnDefault("TIMEZONE", cfg.Server.Timezone))
	cfg.Server.LogLevel = cast.ToString(getOrReturnDefault("LOG_LEVEL", cfg.Server.LogLevel))

	cfg.Database.URL = cast.ToString(getOrReturnDefault("DATABASE_URL", cfg.Database.URL))
	cfg.Database.MaxIdleConns = cast.ToInt(getOrReturnDefault("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns))
	cfg.Database.MaxOpenConns = cast.ToInt(getOrReturnDefault("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns))
	cfg.Database.Migrations = cast.ToString(getOrReturnDefault("MIGRATIONS_PATH", cfg.Database.Migrations))

	cfg.Redis.Address = cast.ToString(getOrReturnDefault("REDIS_ADDRESS", cfg.Redis.Address))
	cfg.Redis.Password = cast.ToString(getOrReturnDefault("REDIS_PASSWORD", cfg.Redis.Password))
	cfg.Redis.DB = cast.ToInt(getOrReturnDefault("REDIS_DB", cfg.Redis.DB))
	cfg.Redis.CacheTTL = cast.ToDuration(getOrReturnDefault("CACHE_TTL", cfg.Redis.CacheTTL))

	cfg.JWT.Secret = cast.ToString(getOrReturnDefault("JWT_SECRET", cfg.JWT.Secret))
	cfg.JWT.AccessTTL = cast.ToDuration(getOrReturnDefault("JWT_ACCESS_TTL", cfg.JWT.AccessTTL))
	cfg.JWT.RefreshTTL = cast.ToDuration(getOrReturnDefault("JWT_REFRESH_TTL", cfg.JWT.RefreshTTL))

	cfg.Storage.Endpoint = cast.ToString(getOrReturnDefault("S3_ENDPOINT", cfg.Storage.Endpoint))
	cfg.Storage.Region = cast.ToString(getOrReturnDefault("S3_REGION", cfg.Storage.Region))
	cfg.Storage.Bucket = cast.ToString(getOrReturnDefault("S3_BUCKET", cfg.Storage.Bucket))
	cfg.Storage.AccessKey = cast.ToString(getOrReturnDefault("S3_ACCESS_KEY", cfg.Storage.AccessKey))
	cfg.Storage.SecretKey = cast.ToString(getOrReturnDefault("S3_SECRET_KEY", cfg.Storage.SecretKey))
	cfg.Storage.PublicURL = cast.ToString(getOrReturnDefault("S3_PUBLIC_URL", cfg.Storage.PublicURL))

	cfg.Firebase.CredentialsFile = cast.ToString(getOrReturnDefault("FIREBASE_CREDENTIALS", cfg.Firebase.CredentialsFile))

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitComma(v)
	}

	cfg.RateLimit.PerMinute = cast.ToInt(getOrReturnDefault("RATE_LIMIT_PER_MINUTE", cfg.RateLimit.PerMinute))
	cfg.RateLimit.Burst = cast.ToInt(getOrReturnDefault("RATE_LIMIT_BURST", cfg.RateLimit.Burst))

	cfg.Ads.TTL = cast.ToDuration(getOrReturnDefault("ADS_TTL", cfg.Ads.TTL))

	cfg.Admin.Name = cast.ToString(getOrReturnDefault("ADMIN_NAME", cfg.Admin.Name))
	cfg.Admin.Phone = cast.ToString(getOrReturnDefault("ADMIN_PHONE", cfg.Admin.Phone))
	cfg.Admin.Password = cast.ToString(getOrReturnDefault("ADMIN_PASSWORD", cfg.Admin.Password))
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":4001"
	}
	if cfg.Server.Timezone == "" {
		cfg.Server.Timezone = "Europe/Istanbul"
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 35
	}
	if cfg.Database.Migrations == "" {
		cfg.Database.Migrations = "migrations"
	}
	if cfg.Redis.CacheTTL <= 0 {
		cfg.Redis.CacheTTL = time.Minute
	}
	if cfg.JWT.AccessTTL <= 0 {
		cfg.JWT.AccessTTL = 20 * time.Hour
	}
	if cfg.JWT.RefreshTTL <= 0 {
		cfg.JWT.RefreshTTL = 30 * 24 * time.Hour
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.MaxSizeMB <= 0 {
		cfg.Storage.MaxSizeMB = 10
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.RateLimit.PerMinute <= 0 {
		cfg.RateLimit.PerMinute = 10
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 5
	}
	if cfg.Ads.TTL <= 0 {
		cfg.Ads.TTL = 30 * 24 * time.Hour
	}
	if cfg.Admin.Name == "" {
		cfg.Admin.Name = "Administrator"
	}
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitComma(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
