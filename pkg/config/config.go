package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Database. DatabaseURL selects PostgreSQL when set; otherwise the
	// SQLite file at DatabasePath is used.
	DatabaseURL  string
	DatabasePath string

	// Planning
	Chronotype string
	WorkStart  time.Duration
	WorkEnd    time.Duration

	// CalDAV import
	CalDAVURL          string
	CalDAVUsername     string
	CalDAVPassword     string
	CalDAVCalendarPath string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("TEMPORA_ENV", "development"),
		LogLevel:  getEnv("TEMPORA_LOG_LEVEL", "info"),
		LogFormat: getEnv("TEMPORA_LOG_FORMAT", ""),

		DatabaseURL:  getEnv("TEMPORA_DATABASE_URL", ""),
		DatabasePath: getEnv("TEMPORA_DB", defaultDatabasePath()),

		Chronotype: getEnv("TEMPORA_CHRONOTYPE", "morning"),
		WorkStart:  time.Duration(getIntEnv("TEMPORA_WORK_START", 8)) * time.Hour,
		WorkEnd:    time.Duration(getIntEnv("TEMPORA_WORK_END", 22)) * time.Hour,

		CalDAVURL:          getEnv("TEMPORA_CALDAV_URL", ""),
		CalDAVUsername:     getEnv("TEMPORA_CALDAV_USERNAME", ""),
		CalDAVPassword:     getEnv("TEMPORA_CALDAV_PASSWORD", ""),
		CalDAVCalendarPath: getEnv("TEMPORA_CALDAV_CALENDAR", ""),
	}

	return cfg, nil
}

// UsePostgres reports whether a PostgreSQL URL is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tempora.db"
	}
	return home + "/.tempora/tempora.db"
}
