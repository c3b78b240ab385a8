package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDevSecret = "dev-secret-change-me"

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	NATS     NATSConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	CORS     CORSConfig
}

// RedisConfig for the per-user task list cache. An empty URL disables it.
type RedisConfig struct {
	URL      string // redis://localhost:6379
	Password string
	DB       int
	TaskTTL  time.Duration
}

func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

type AppConfig struct {
	Name    string
	Port    string
	Env     string
	Version string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NATSConfig for task event publishing. An empty URL disables it.
type NATSConfig struct {
	URL           string // nats://localhost:4222
	SubjectPrefix string
}

func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, stderr, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

type CORSConfig struct {
	FrontendURL string
}

// AllowedOrigins returns the local dev origins plus the configured frontend.
func (c CORSConfig) AllowedOrigins() []string {
	origins := []string{"http://localhost:3000", "https://localhost:3000"}
	if c.FrontendURL != "" {
		for _, o := range strings.Split(c.FrontendURL, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	return origins
}

func LoadConfig() (*Config, error) {
	// .env is optional; plain environment variables work too
	_ = godotenv.Load()

	logMaxSize, err := getEnvInt("LOG_MAX_SIZE", 100)
	if err != nil {
		return nil, err
	}
	logMaxBackups, err := getEnvInt("LOG_MAX_BACKUPS", 5)
	if err != nil {
		return nil, err
	}
	logMaxAge, err := getEnvInt("LOG_MAX_AGE", 30)
	if err != nil {
		return nil, err
	}
	logCompress, err := strconv.ParseBool(getEnv("LOG_COMPRESS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_COMPRESS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	expireDays, err := getEnvInt("ACCESS_TOKEN_EXPIRE_DAYS", 7)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(getEnv("TASK_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid TASK_CACHE_TTL: %w", err)
	}

	env := getEnv("APP_ENV", "development")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" && env == "development" {
		secret = defaultDevSecret
	}

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Todo API"),
			Port:    getEnv("APP_PORT", "8000"),
			Env:     env,
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "todo"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:           os.Getenv("NATS_URL"),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "todo"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TaskTTL:  cacheTTL,
		},
		JWT: JWTConfig{
			Secret:   secret,
			TokenTTL: time.Duration(expireDays) * 24 * time.Hour,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		CORS: CORSConfig{
			FrontendURL: os.Getenv("FRONTEND_URL"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.TokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_DAYS must be positive")
	}
	if c.Redis.Enabled() && c.Redis.TaskTTL <= 0 {
		return errors.New("TASK_CACHE_TTL must be positive")
	}
	if c.Redis.DB < 0 {
		return errors.New("REDIS_DB must not be negative")
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return errors.New("LOG_MAX_SIZE, LOG_MAX_BACKUPS and LOG_MAX_AGE must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt reads an integer setting, naming the key when it does not parse.
func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
