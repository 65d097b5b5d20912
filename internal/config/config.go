// Package config reads server settings from the environment. main loads a
// .env file first so local development can keep them on disk.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Words   WordsConfig
	Session SessionConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port         string
	ClientOrigin string
	Env          string // "development" or "production"
	ShareLink    string // appended to share text
}

// WordsConfig points at optional word list files. Empty means embedded lists.
type WordsConfig struct {
	AnswersFile string
	AllowedFile string
	DailySalt   string
}

// SessionConfig controls game ownership tokens and idle eviction.
type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	SweepInterval time.Duration
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5175"),
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			Env:          getEnv("NODE_ENV", "development"),
			ShareLink:    getEnv("SHARE_LINK", ""),
		},
		Words: WordsConfig{
			AnswersFile: getEnv("WORDS_ANSWERS_FILE", ""),
			AllowedFile: getEnv("WORDS_ALLOWED_FILE", ""),
			DailySalt:   getEnv("DAILY_SALT", "local_dev_salt"),
		},
		Session: SessionConfig{
			Secret:        getEnv("SESSION_SECRET", "dev_secret_change_me"),
			TTL:           time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
			SweepInterval: time.Duration(getEnvInt("SESSION_SWEEP_MINUTES", 10)) * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// IsProduction reports whether cookies should be Secure/SameSite=None.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt returns k parsed as an int, or def if unset or malformed.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
