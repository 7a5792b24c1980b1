// Package ai holds the provider-neutral types for drafting a cover note from an estimate.
package ai

import (
	"context"

	"github.com/spigell/rfp-responder/internal/pipeline"
)

const ProviderGemini = "gemini"

// CoverNote is a short bid letter drafted from a processed RFP.
type CoverNote struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Raw   string `json:"-"`
}

type Drafter interface {
	Draft(ctx context.Context, result *pipeline.Result) (*CoverNote, error)
}

type Config struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

// IsEnabled reports whether drafting is switched on.
func (c *Config) IsEnabled() bool {
	return c != nil && c.Enabled
}
