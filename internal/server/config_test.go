package server

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestSettingsFromEnvDefaults(t *testing.T) {
	settings, err := SettingsFromEnv(envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Port:          "8080",
		LogLevel:      log.InfoLevel,
		MaxExpansions: defaultMaxExpansions,
		MaxCells:      defaultMaxCells,
	}, settings)
}

func TestSettingsFromEnv(t *testing.T) {
	settings, err := SettingsFromEnv(envOf(map[string]string{
		"PORT":                     "9000",
		"GRIDASTAR_LOG_LEVEL":      "debug",
		"GRIDASTAR_MAX_EXPANSIONS": "0",
		"GRIDASTAR_MAX_CELLS":      "2500",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9000", settings.Port)
	assert.Equal(t, log.DebugLevel, settings.LogLevel)
	assert.Equal(t, 0, settings.MaxExpansions)
	assert.Equal(t, 2500, settings.MaxCells)
}

func TestSettingsFromEnvErrors(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"bad level":    {"GRIDASTAR_LOG_LEVEL": "loud"},
		"bad cap":      {"GRIDASTAR_MAX_EXPANSIONS": "many"},
		"negative cap": {"GRIDASTAR_MAX_EXPANSIONS": "-1"},
		"bad cells":    {"GRIDASTAR_MAX_CELLS": "lots"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := SettingsFromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
