package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the panel client
type Config struct {
	APIBaseURL     string
	LogLevel       string
	Environment    string
	ListRefresh    time.Duration // poll period for punishment list pages
	ChatRefresh    time.Duration // poll period for the staff chat page
	ChatLimit      int           // number of chat messages fetched per load
	NotifyTTL      time.Duration // how long a toast stays visible
	RequestTimeout time.Duration // per-request deadline for API calls
	SessionFile    string        // where the cached session identity lives
	ChatStreamURL  string        // optional SSE endpoint; empty means polling
	ConsoleLogging bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	sessionFile := getEnv("PANEL_SESSION_FILE", "")
	if sessionFile == "" {
		if base, err := os.UserConfigDir(); err == nil {
			sessionFile = filepath.Join(base, "panelctl", "session.json")
		} else {
			sessionFile = ".panelctl-session.json"
		}
	}

	return &Config{
		APIBaseURL:     getEnv("PANEL_API_URL", "http://localhost:8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Environment:    getEnv("ENVIRONMENT", "production"),
		ListRefresh:    getDurationEnv("PANEL_LIST_REFRESH", 60*time.Second),
		ChatRefresh:    getDurationEnv("PANEL_CHAT_REFRESH", 10*time.Second),
		ChatLimit:      getIntEnv("PANEL_CHAT_LIMIT", 50),
		NotifyTTL:      getDurationEnv("PANEL_NOTIFY_TTL", 5*time.Second),
		RequestTimeout: getDurationEnv("PANEL_REQUEST_TIMEOUT", 15*time.Second),
		SessionFile:    sessionFile,
		ChatStreamURL:  getEnv("PANEL_CHAT_STREAM_URL", ""),
		ConsoleLogging: getBoolEnv("PANEL_CONSOLE_LOG", true),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value.
// Accepts Go duration syntax ("45s", "2m") or a plain number of seconds.
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
