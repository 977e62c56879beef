package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads defaults with secret set", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("JWT_SECRET", "test-secret")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.VisionAPIURL)
		assert.Equal(t, 0, cfg.RedisDB)
	})

	t.Run("fails without JWT secret", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("JWT_SECRET_FILE", "")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("reads secrets from file", func(t *testing.T) {
		secretPath := filepath.Join(t.TempDir(), "vision_api_key")
		require.NoError(t, os.WriteFile(secretPath, []byte("file-key\n"), 0o600))

		t.Setenv("ENV", "test")
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("VISION_API_KEY", "")
		t.Setenv("VISION_API_KEY_FILE", secretPath)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.VisionAPIKey)
	})

	t.Run("rejects malformed REDIS_DB", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("REDIS_DB", "not-a-number")

		_, err := LoadConfig()

		assert.Error(t, err)
	})
}

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		ci       string
		env      string
		expected Environment
	}{
		{"ci detected", "true", "", CI},
		{"production", "", "production", Production},
		{"test", "", "test", Test},
		{"default development", "", "", Development},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ci)
			t.Setenv("ENV", tt.env)
			assert.Equal(t, tt.expected, GetEnvironment())
		})
	}
}
