// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the shell needs. API keys are not here: the
// provider clients read their own env vars and only complain on first use.
type Config struct {
	Provider    string  `env:"PCHAT_PROVIDER" envDefault:"openai"`
	Model       string  `env:"PCHAT_MODEL" envDefault:"gpt-3.5-turbo"`
	Temperature float64 `env:"PCHAT_TEMPERATURE" envDefault:"0.65"`
	MaxTokens   int     `env:"PCHAT_MAX_TOKENS" envDefault:"512"`
	Persona     string  `env:"PCHAT_PERSONA" envDefault:"RoastBot"`

	// Persistence
	Persist  bool   `env:"PCHAT_PERSIST" envDefault:"true"`
	StateDir string `env:"PCHAT_STATE_DIR" envDefault:".personachat"`

	// Prompt windowing
	HistoryWindow int `env:"PCHAT_HISTORY_WINDOW" envDefault:"24"`
	PromptBudget  int `env:"PCHAT_PROMPT_BUDGET" envDefault:"48000"`

	LogLevel string `env:"PCHAT_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SnapshotPath is the conversation snapshot file inside the state dir.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.StateDir, "conversation.json")
}

// OverlayPath is the optional persona overlay file inside the state dir.
func (c *Config) OverlayPath() string {
	return filepath.Join(c.StateDir, "personas.yaml")
}
