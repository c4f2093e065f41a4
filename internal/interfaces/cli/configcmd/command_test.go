package configcmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/autocrm/autocrm/internal/infrastructure/config"
	sharedConfig "github.com/autocrm/autocrm/internal/shared/config"
)

func sampleConfig() *config.Config {
	return &config.Config{
		Server:   sharedConfig.ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: sharedConfig.DatabaseConfig{Driver: "postgres", Password: "db-password-123"},
		Backend: sharedConfig.BackendConfig{
			URL:            "https://project.backend.test",
			AnonKey:        "anon-key-abcdef",
			ServiceKey:     "service-key-abcdef",
			JWTSecret:      "jwt-secret-abcdef",
			RequestTimeout: 15 * time.Second,
		},
	}
}

func TestRender_MasksSecrets(t *testing.T) {
	cfg := sampleConfig()

	out, err := render(cfg, false)
	require.NoError(t, err)

	var decoded config.Config
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "db-p****", decoded.Database.Password)
	assert.Equal(t, "anon****", decoded.Backend.AnonKey)
	assert.Equal(t, "serv****", decoded.Backend.ServiceKey)
	assert.Equal(t, "jwt-****", decoded.Backend.JWTSecret)
	assert.Equal(t, "https://project.backend.test", decoded.Backend.URL)
	assert.Equal(t, 15*time.Second, decoded.Backend.RequestTimeout)

	assert.Equal(t, "jwt-secret-abcdef", cfg.Backend.JWTSecret, "source config must not change")
}

func TestRender_Reveal(t *testing.T) {
	out, err := render(sampleConfig(), true)
	require.NoError(t, err)
	assert.Contains(t, string(out), "jwt-secret-abcdef")
}
