package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/rfp-responder/internal/ai"
	"github.com/spigell/rfp-responder/internal/logger"
	"github.com/spigell/rfp-responder/internal/pipeline"
)

const (
	defaultMaxLogLength = 200
	systemInstruction   = "You draft concise, factual commercial correspondence. Output plain text only."
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Drafter turns a processed RFP into a cover note with Gemini.
type Drafter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewDrafter(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Drafter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Drafter{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (d *Drafter) Draft(ctx context.Context, result *pipeline.Result) (*ai.CoverNote, error) {
	if result == nil {
		return nil, errors.New("estimate is required")
	}

	estimateJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal estimate payload: %w", err)
	}

	prompt := buildPrompt(result.Summary.Title, string(estimateJSON))
	log := d.logger.With(logger.EstimateFields(result.ID, result.Summary.Title)...)

	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, d.maxLogLen)),
	)

	raw, err := d.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, d.maxLogLen)),
	)

	text := stripFences(raw)
	if text == "" {
		return nil, errors.New("gemini returned an empty cover note")
	}

	return &ai.CoverNote{
		Text:  text,
		Model: d.generator.Model(),
		Raw:   raw,
	}, nil
}

func buildPrompt(title, estimateJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "RFP: {{TITLE}}\n\nEstimate:\n{{ESTIMATE_JSON}}\n\nCover note:"
	}
	prompt := strings.ReplaceAll(template, "{{TITLE}}", title)
	prompt = strings.ReplaceAll(prompt, "{{ESTIMATE_JSON}}", estimateJSON)
	return prompt
}

// stripFences removes a markdown code fence the model may wrap its answer in.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if idx := strings.Index(raw, "\n"); idx != -1 {
			raw = raw[idx+1:]
		} else {
			raw = strings.TrimPrefix(raw, "```")
		}
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
