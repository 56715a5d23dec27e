package server

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Settings is the process configuration read from the environment.
type Settings struct {
	Port          string
	LogLevel      log.Level
	MaxExpansions int
	MaxCells      int
}

const (
	envPort          = "PORT"
	envLogLevel      = "GRIDASTAR_LOG_LEVEL"
	envMaxExpansions = "GRIDASTAR_MAX_EXPANSIONS"
	envMaxCells      = "GRIDASTAR_MAX_CELLS"

	defaultPort          = "8080"
	defaultMaxExpansions = 1_000_000
	defaultMaxCells      = 4_000_000
)

// SettingsFromEnv reads Settings through getenv, usually os.Getenv.
func SettingsFromEnv(getenv func(string) string) (Settings, error) {
	settings := Settings{
		Port:          defaultPort,
		LogLevel:      log.InfoLevel,
		MaxExpansions: defaultMaxExpansions,
		MaxCells:      defaultMaxCells,
	}
	if port := getenv(envPort); port != "" {
		settings.Port = port
	}
	if level := getenv(envLogLevel); level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", envLogLevel, err)
		}
		settings.LogLevel = parsed
	}
	if raw := getenv(envMaxExpansions); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Settings{}, fmt.Errorf("%s: want a non-negative integer, got %q", envMaxExpansions, raw)
		}
		settings.MaxExpansions = n
	}
	if raw := getenv(envMaxCells); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Settings{}, fmt.Errorf("%s: want a non-negative integer, got %q", envMaxCells, raw)
		}
		settings.MaxCells = n
	}
	return settings, nil
}
