package server

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the pricing service configuration, loaded from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port            int
	LogLevel        string
	AllowedOrigins  []string
	ScenarioWorkers int
}

// LoadConfig reads configuration from the environment. A missing .env file
// is not an error; explicit environment variables always win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:            8080,
		LogLevel:        getEnv("PRICER_LOG_LEVEL", "info"),
		AllowedOrigins:  strings.Split(getEnv("PRICER_ALLOWED_ORIGINS", "*"), ","),
		ScenarioWorkers: 4,
	}

	if v := os.Getenv("PRICER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("server.LoadConfig: invalid PRICER_PORT %q", v)
		}
		cfg.Port = port
	}
	if v := os.Getenv("PRICER_SCENARIO_WORKERS"); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil || workers <= 0 {
			return Config{}, fmt.Errorf("server.LoadConfig: invalid PRICER_SCENARIO_WORKERS %q", v)
		}
		cfg.ScenarioWorkers = workers
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
