package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CLASSIFIER_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.peopleconnect.app, http://localhost:5173,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, int64(30), cfg.ClassifierTimeoutSeconds)
	assert.Equal(t, []string{"https://admin.peopleconnect.app", "http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Environment: "production"}).IsProduction())
	assert.False(t, (&Config{Environment: "development"}).IsProduction())
}
