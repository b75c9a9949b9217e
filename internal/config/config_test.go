package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "discord-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "discord-token", cfg.DiscordToken)
		assert.Equal(t, "sk-test", cfg.OpenAIKey)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
		assert.Equal(t, 0.7, cfg.Temperature)
		assert.Equal(t, "https://api.openai.com/v1", cfg.BaseURL)
		assert.Empty(t, cfg.CommandGuildID)
	})

	t.Run("environment overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ARCHITECT_MODEL", "gpt-4o")
		t.Setenv("ARCHITECT_TEMPERATURE", "0.2")
		t.Setenv("ARCHITECT_COMMAND_GUILD", "guild-42")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gpt-4o", cfg.Model)
		assert.Equal(t, 0.2, cfg.Temperature)
		assert.Equal(t, "guild-42", cfg.CommandGuildID)
	})

	t.Run("unparsable temperature falls back to default", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ARCHITECT_TEMPERATURE", "warm")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 0.7, cfg.Temperature)
	})

	t.Run("missing Discord token", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DISCORD_TOKEN")
	})

	t.Run("missing API key", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "discord-token")
		t.Setenv("OPENAI_API_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("yaml overlay", func(t *testing.T) {
		setRequiredEnv(t)

		path := filepath.Join(t.TempDir(), "architect.yaml")
		content := "model: gpt-4-turbo\ntemperature: 0.5\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv("ARCHITECT_CONFIG", path)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gpt-4-turbo", cfg.Model)
		assert.Equal(t, 0.5, cfg.Temperature)
		// Values absent from the file keep their env defaults.
		assert.Equal(t, "discord-token", cfg.DiscordToken)
	})

	t.Run("missing config file", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ARCHITECT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := Load()
		require.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DiscordToken: "discord-token",
			OpenAIKey:    "sk-test",
			Model:        "gpt-4o-mini",
			Temperature:  0.7,
		}
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("empty model", func(t *testing.T) {
		cfg := valid()
		cfg.Model = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Temperature = 3.5
		require.Error(t, cfg.Validate())
	})
}
