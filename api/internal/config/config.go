package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	WebhookURL string `env:"WEBHOOK_URL"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	// Inference service base URL resolution, see BaseURL.
	AppEnv       string        `env:"APP_ENV" envDefault:"production"`
	APIURL       string        `env:"API_URL"`
	PublicOrigin string        `env:"PUBLIC_ORIGIN"`
	APITimeout   time.Duration `env:"API_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	PrefsBackend string `env:"PREFS_BACKEND" envDefault:"postgres"`

	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"aquabot"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresHost     string `env:"PGHOST" envDefault:"db"`
	PostgresPort     string `env:"PGPORT" envDefault:"5432"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"aquabot"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"aqua:"`

	VoiceEnabled      bool          `env:"VOICE_ENABLED" envDefault:"true"`
	VoiceStartTimeout time.Duration `env:"VOICE_START_TIMEOUT" envDefault:"2s"`
	VoiceSynthTimeout time.Duration `env:"VOICE_SYNTH_TIMEOUT" envDefault:"30s"`

	// ShutdownTimeout bounds how long accepted requests may finish after a signal.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using process environment")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if strings.TrimSpace(cfg.TelegramBotToken) == "" {
		return nil, errors.New("config: missing required env TELEGRAM_BOT_TOKEN")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8080"
	}
	return cfg, nil
}

// IsDevelopment reports APP_ENV=development (or dev).
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.AppEnv)) {
	case "development", "dev":
		return true
	}
	return false
}

// BaseURL is API_URL when set, the local backend in development, and the
// same-origin /api path otherwise.
func (c *Config) BaseURL() (string, error) {
	if v := strings.TrimSpace(c.APIURL); v != "" {
		return strings.TrimRight(v, "/"), nil
	}
	if c.IsDevelopment() {
		return "http://localhost:8000", nil
	}
	origin := strings.TrimRight(strings.TrimSpace(c.PublicOrigin), "/")
	if origin == "" {
		return "", errors.New("config: set API_URL or PUBLIC_ORIGIN to locate the inference service")
	}
	return origin + "/api", nil
}

// DSN prefers DATABASE_URL and otherwise builds one from POSTGRES_* / PG*.
func (c *Config) DSN() string {
	if v := strings.TrimSpace(c.DatabaseURL); v != "" {
		return v
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     net.JoinHostPort(c.PostgresHost, c.PostgresPort),
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
