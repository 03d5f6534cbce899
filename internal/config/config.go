package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Assessment AssessmentConfig
	LocalStore LocalStoreConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogJSON     bool
	LogDebug    bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	Secret    string
	Issuer    string
	AdminRole string
}

type AssessmentConfig struct {
	DefaultType         string
	CatalogFreshness    time.Duration
	ProgressTTL         time.Duration
	RecommendationLimit int
}

type LocalStoreConfig struct {
	Dir string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	ErrMissingJWTSecret   = errors.New("missing JWT_SECRET")
)

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:     opt("APP_NAME"),
		Environment: opt("APP_ENV"),
		HTTPPort:    opt("HTTP_PORT"),
		LogJSON:     v.GetBool("LOG_JSON"),
		LogDebug:    v.GetBool("LOG_DEBUG"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                req("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                req("DB_NAME"),
		DBUser:                req("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
		MigrationsDir:         opt("MIGRATIONS_DIR"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      v.GetDuration("REDIS_TTL"),
	}

	cfg.JWT = JWTConfig{
		Secret:    opt("JWT_SECRET"),
		Issuer:    opt("JWT_ISSUER"),
		AdminRole: opt("JWT_ADMIN_ROLE"),
	}

	cfg.Assessment = AssessmentConfig{
		DefaultType:         opt("ASSESSMENT_DEFAULT_TYPE"),
		CatalogFreshness:    v.GetDuration("CATALOG_FRESHNESS"),
		ProgressTTL:         v.GetDuration("PROGRESS_TTL"),
		RecommendationLimit: v.GetInt("RECOMMENDATION_LIMIT"),
	}

	cfg.LocalStore = LocalStoreConfig{Dir: opt("LOCAL_STORE_DIR")}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// RequireJWT is checked by entry points that validate bearer tokens.
func (c Config) RequireJWT() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "career-guidance")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", 600*time.Second)

	v.SetDefault("JWT_ADMIN_ROLE", "admin")

	v.SetDefault("ASSESSMENT_DEFAULT_TYPE", "riasec")
	v.SetDefault("CATALOG_FRESHNESS", 24*time.Hour)
	v.SetDefault("PROGRESS_TTL", 30*24*time.Hour)
	v.SetDefault("RECOMMENDATION_LIMIT", 5)

	v.SetDefault("LOCAL_STORE_DIR", defaultLocalStoreDir())
}

func defaultLocalStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".career-guidance"
	}
	return filepath.Join(home, ".career-guidance")
}
