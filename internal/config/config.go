package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds pulse-service configuration.
type Config struct {
	AppEnv   string // APP_ENV
	AppHost  string // APP_HOST
	HTTPPort string // APP_PORT or HTTP_PORT
	LogLevel string // LOG_LEVEL

	// PostgreSQL
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Database string
		SSLMode  string
	}

	// WebSocket
	WSReadBufferSize  int
	WSWriteBufferSize int
	WSMaxMessageSize  int64

	// Engagement defaults
	DefaultSessionTTLMinutes int
	JoinFormMaxFields        int

	// WebSocket URL returned to joiners (e.g. wss://pulse.example.com)
	WSBaseURL string

	// Optional agenda-drafts collaborator (blank disables suggestions)
	AgendaServiceURL     string
	AgendaTimeoutSeconds int
}

// Load loads config from environment (.env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	readBuf, _ := strconv.Atoi(getEnv("WS_READ_BUFFER_SIZE", "4096"))
	writeBuf, _ := strconv.Atoi(getEnv("WS_WRITE_BUFFER_SIZE", "4096"))
	maxMsg, _ := strconv.ParseInt(getEnv("WS_MAX_MESSAGE_SIZE", "65536"), 10, 64)
	ttl, _ := strconv.Atoi(getEnv("DEFAULT_SESSION_TTL_MINUTES", "480"))
	maxFields, _ := strconv.Atoi(getEnv("JOIN_FORM_MAX_FIELDS", "5"))
	agendaTO, _ := strconv.Atoi(getEnv("AGENDA_TIMEOUT_SECONDS", "15"))

	cfg := &Config{
		AppEnv:                   getEnv("APP_ENV", "development"),
		AppHost:                  getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort:                 firstEnv("APP_PORT", "HTTP_PORT", "8085"),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		WSReadBufferSize:         readBuf,
		WSWriteBufferSize:        writeBuf,
		WSMaxMessageSize:         maxMsg,
		DefaultSessionTTLMinutes: ttl,
		JoinFormMaxFields:        maxFields,
		WSBaseURL:                getEnv("WS_BASE_URL", ""),
		AgendaServiceURL:         getEnv("AGENDA_SERVICE_URL", ""),
		AgendaTimeoutSeconds:     agendaTO,
	}
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.Database = getEnv("DB_DATABASE", "pulse_service")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	return cfg, nil
}

// Validate checks required fields and production safety.
func (c *Config) Validate() error {
	if c.DB.Host == "" {
		return errors.New("config: DB_HOST is required")
	}
	if c.DB.User == "" {
		return errors.New("config: DB_USER is required")
	}
	if c.DB.Database == "" {
		return errors.New("config: DB_DATABASE is required")
	}
	if c.AppEnv == "production" && c.DB.Password == "" {
		return errors.New("config: in production DB_PASSWORD is required")
	}
	if c.DefaultSessionTTLMinutes <= 0 {
		return errors.New("config: DEFAULT_SESSION_TTL_MINUTES must be positive")
	}
	if c.JoinFormMaxFields <= 0 {
		return errors.New("config: JOIN_FORM_MAX_FIELDS must be positive")
	}
	return nil
}

// DSN returns the PostgreSQL connection string for GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

// DatabaseURL returns the postgres URL for golang-migrate.
func (c *Config) DatabaseURL() string {
	pass := url.QueryEscape(c.DB.Password)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, pass, c.DB.Host, c.DB.Port, c.DB.Database, c.DB.SSLMode)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	keys := keysAndDef[:len(keysAndDef)-1]
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
