package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/rfp-responder/internal/ai"
	"github.com/spigell/rfp-responder/internal/ai/gemini"
	"github.com/spigell/rfp-responder/internal/catalog"
	"github.com/spigell/rfp-responder/internal/logger"
	"github.com/spigell/rfp-responder/internal/pipeline"
	"github.com/spigell/rfp-responder/internal/secrets"
)

const geminiKeyEnv = "GEMINI_API_KEY"

// setup builds the logger, reads the config and prepares the pipeline.
// It exits the process on failure the same way for every command.
func setup() (*zap.Logger, *Config, *pipeline.Pipeline) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	cat, err := catalog.FromConfig(config.Catalog)
	if err != nil {
		logger.Fatal("loading the catalog", zap.Error(err))
	}

	logger.Debug("catalog loaded", zap.Int("items", cat.Len()), zap.Strings("skus", cat.SKUs()))

	return logger, config, pipeline.New(cat, logger)
}

// redacted returns a copy of the config that is safe to log.
func redacted(config *Config) *Config {
	if config == nil || config.AI == nil || config.AI.Gemini == nil || config.AI.Gemini.APIKey == "" {
		return config
	}

	aiCopy := *config.AI
	geminiCopy := *config.AI.Gemini
	geminiCopy.APIKey = "***"
	aiCopy.Gemini = &geminiCopy

	copied := *config
	copied.AI = &aiCopy
	return &copied
}

func newDrafter(ctx context.Context, cfg *ai.Config, log *zap.Logger) (ai.Drafter, error) {
	if !cfg.IsEnabled() {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != ai.ProviderGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	geminiCfg := cfg.Gemini
	if geminiCfg == nil {
		geminiCfg = &ai.GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  geminiCfg.APIKeyFile,
		Value: geminiCfg.APIKey,
		Env:   geminiKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiKeyEnv)
	}

	genLogger := logger.WithFields(log, logger.ProviderFields(ai.ProviderGemini, geminiCfg.Model)...).With(
		zap.Int("ai_retry_attempts", geminiCfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, geminiCfg.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	drafterLogger := logger.WithFields(log, logger.ProviderFields(ai.ProviderGemini, generator.Model())...)

	return gemini.NewDrafter(generator, geminiCfg.MaxLogLength, drafterLogger), nil
}
