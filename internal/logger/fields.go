package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldEstimateID = "estimate_id"
	FieldTitle      = "rfp_title"
	FieldProvider   = "ai_provider"
	FieldModel      = "ai_model"
)

// nonEmpty keeps only the key/value pairs with a non-blank value.
func nonEmpty(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		value := strings.TrimSpace(pairs[i+1])
		if value == "" {
			continue
		}
		fields = append(fields, zap.String(pairs[i], value))
	}
	return fields
}

// EstimateFields identifies a processed RFP in log entries.
func EstimateFields(id, title string) []zap.Field {
	return nonEmpty(FieldEstimateID, id, FieldTitle, title)
}

// ProviderFields describes the AI provider and model used for drafting.
func ProviderFields(provider, model string) []zap.Field {
	return nonEmpty(FieldProvider, provider, FieldModel, model)
}

// WithFields attaches fields to the logger, falling back to a no-op logger for nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}
