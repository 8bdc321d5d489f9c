// Package config reads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/quantumrishi/rishi/internal/llm"
)

// Config holds all application configuration.
type Config struct {
	Addr           string
	ChatSessionTTL time.Duration
	LogMode        string // "dev" or "prod"
	LogFile        string
	DBPath         string   // empty disables the LLM event log
	WSOrigins      []string // extra origin hosts allowed on the chat websocket
	LLM            llm.Config
}

// LoadDotEnv reads the given .env files (default ".env") into the process
// environment. Missing files are not an error; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:           getEnv("RISHI_ADDR", ":8080"),
		ChatSessionTTL: getEnvDuration("RISHI_CHAT_SESSION_TTL", 30*time.Minute),
		LogMode:        strings.ToLower(getEnv("RISHI_LOG_MODE", "dev")),
		LogFile:        getEnv("RISHI_LOG_FILE", ""),
		DBPath:         getEnv("RISHI_DB", ""),
		WSOrigins:      getEnvList("RISHI_WS_ORIGINS"),
		LLM:            llm.ConfigFromEnv(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("RISHI_ADDR cannot be empty")
	}
	switch c.LogMode {
	case "dev", "prod":
	default:
		return fmt.Errorf("RISHI_LOG_MODE must be dev or prod, got %q", c.LogMode)
	}
	if c.ChatSessionTTL < 0 {
		return errors.New("RISHI_CHAT_SESSION_TTL must not be negative")
	}
	return c.LLM.Validate()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// getEnvDuration accepts a Go duration ("45m") or a bare number of
// minutes.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if n := getEnvInt(key, -1); n >= 0 {
		return time.Duration(n) * time.Minute
	}
	return fallback
}
