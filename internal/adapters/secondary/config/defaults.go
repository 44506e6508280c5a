package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/lessondeck/lessondeck/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	config := &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("LESSONDECK_HOST", "localhost"),
			Port:            getEnvIntOrDefault("LESSONDECK_PORT", 1976),
			ReadTimeout:     getEnvIntOrDefault("LESSONDECK_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault("LESSONDECK_WRITE_TIMEOUT", 30),
			ShutdownTimeout: getEnvIntOrDefault("LESSONDECK_SHUTDOWN_TIMEOUT", 5),
			CORSOrigins: getEnvSliceOrDefault("LESSONDECK_CORS_ORIGINS", []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			}),
		},
		Browser: entities.BrowserConfig{
			AutoOpen: true,
			Browser:  "default",
		},
		Watcher: entities.WatcherConfig{
			IntervalMs:   200,
			DebounceMs:   500,
			MaxRetries:   3,
			RetryDelayMs: 100,
		},
		Preview: entities.PreviewConfig{
			StylePath: getEnvOrDefault("LESSONDECK_STYLES", ""),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("LESSONDECK_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("LESSONDECK_LOG_VERBOSE", false),
		},
	}

	applyEnvironmentOverrides(config)

	return config
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns environment variable as slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// applyEnvironmentOverrides applies additional environment-based configuration
func applyEnvironmentOverrides(config *entities.Config) {
	if autoOpen := os.Getenv("LESSONDECK_BROWSER_AUTO_OPEN"); autoOpen != "" {
		if boolValue, err := strconv.ParseBool(autoOpen); err == nil {
			config.Browser.AutoOpen = boolValue
		}
	}

	if browser := os.Getenv("LESSONDECK_BROWSER"); browser != "" {
		config.Browser.Browser = browser
	}

	if interval := os.Getenv("LESSONDECK_WATCH_INTERVAL_MS"); interval != "" {
		if intValue, err := strconv.Atoi(interval); err == nil {
			config.Watcher.IntervalMs = intValue
		}
	}
}
