// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// DiscordToken authenticates against the Discord gateway and REST API.
	DiscordToken string `json:"discord_token" yaml:"discord_token"`

	// OpenAIKey authenticates against the chat completion API.
	OpenAIKey string `json:"openai_key" yaml:"openai_key"`

	// Model is the chat completion model identifier.
	Model string `json:"model" yaml:"model"`

	// Temperature is the sampling temperature for every completion request.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// BaseURL overrides the chat completion API root.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// BrainTimeout bounds a single completion request.
	BrainTimeout time.Duration `json:"brain_timeout" yaml:"brain_timeout"`

	// CommandGuildID scopes the start command registration to one guild.
	// Empty registers the command globally.
	CommandGuildID string `json:"command_guild_id" yaml:"command_guild_id"`
}

// Load reads configuration from environment variables and, when
// ARCHITECT_CONFIG names a YAML file, overlays values from that file on top.
func Load() (*Config, error) {
	cfg := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		Model:          getEnv("ARCHITECT_MODEL", "gpt-4o-mini"),
		Temperature:    getEnvFloat("ARCHITECT_TEMPERATURE", 0.7),
		BaseURL:        getEnv("ARCHITECT_BASE_URL", "https://api.openai.com/v1"),
		BrainTimeout:   2 * time.Minute,
		CommandGuildID: os.Getenv("ARCHITECT_COMMAND_GUILD"),
	}

	if path := os.Getenv("ARCHITECT_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN cannot be empty")
	}
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY cannot be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
