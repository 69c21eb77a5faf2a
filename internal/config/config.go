package config

import (
	"os"
	"strconv"
)

// Config holds process-level settings read from the environment.
type Config struct {
	Port        string
	DBPath      string
	GraphPath   string
	TuningPath  string // empty means built-in defaults
	Environment string
	LogLevel    string

	// AnalyzeRateLimit caps analysis requests per client per minute; 0 disables it.
	AnalyzeRateLimit int
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", ":8080"),
		DBPath:      getEnv("DB_PATH", "./data/analysis.db"),
		GraphPath:   getEnv("GRAPH_PATH", "./data/graph/road_network.json"),
		TuningPath:  os.Getenv("TUNING_PATH"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		AnalyzeRateLimit: getEnvInt("ANALYZE_RATE_LIMIT", 30),
	}
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
