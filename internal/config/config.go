package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Admin    AdminConfig
	Mail     MailConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        int
	CORSOrigins []string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type AdminConfig struct {
	Username string
	Password string
}

type MailConfig struct {
	Server   string
	Port     int
	Username string
	Password string
	Sender   string
}

type AppConfig struct {
	Environment string
	LogLevel    string
}

// Load reads .env.local and .env when present, then the process environment.
// It is called once at startup; the result is passed to constructors.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching any
// dotenv files.
func FromEnv() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvAsInt("PORT", 8080),
			CORSOrigins: getEnvAsList("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_DATABASE", "portfolio"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:     []byte(os.Getenv("SESSION_SECRET")),
			TTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE", "portfolio_session"),
			Secure:     env == "production",
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "yourpassword"),
		},
		Mail: MailConfig{
			Server:   getEnv("MAIL_SERVER", "smtp.gmail.com"),
			Port:     getEnvAsInt("MAIL_PORT", 587),
			Username: os.Getenv("APP_EMAIL"),
			Password: os.Getenv("APP_EMAIL_PASSWORD"),
			Sender:   os.Getenv("APP_EMAIL"),
		},
		App: AppConfig{
			Environment: env,
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("PORT must be a positive integer")
	}
	if c.Database.URL == "" {
		if c.Database.User == "" {
			return fmt.Errorf("DB_USERNAME environment variable is required")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD environment variable is required")
		}
	}
	if len(c.Session.Secret) == 0 {
		if c.App.Environment == "production" {
			return fmt.Errorf("SESSION_SECRET environment variable is required")
		}
		c.Session.Secret = []byte("dev-only-session-secret")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must not be empty")
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres:// URL assembled
// from the individual DB_* settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	userInfo := url.UserPassword(d.User, d.Password)
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=disable",
		userInfo.String(),
		d.Host,
		d.Port,
		url.PathEscape(d.Name),
	)
}

// MailEnabled reports whether enough settings exist to reach an SMTP server.
func (m MailConfig) MailEnabled() bool {
	return m.Server != "" && m.Username != "" && m.Password != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
