// Package pipeline runs the extraction, matching and pricing stages over an RFP.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/rfp-responder/internal/catalog"
	"github.com/spigell/rfp-responder/internal/logger"
	"github.com/spigell/rfp-responder/internal/matching"
	"github.com/spigell/rfp-responder/internal/pricing"
	"github.com/spigell/rfp-responder/internal/rfp"
)

var ErrEmptyText = errors.New("RFP text is required")

// Result is everything produced for one RFP.
type Result struct {
	ID          string           `json:"id,omitempty"`
	ProcessedAt *time.Time       `json:"processedAt,omitempty"`
	Summary     rfp.Summary      `json:"summary"`
	Matches     []matching.Match `json:"matches"`
	Pricing     []pricing.Item   `json:"pricing"`
	GrandTotal  int64            `json:"grandTotal"`
}

// stage advances the result and returns fields describing what it produced.
type stage struct {
	name string
	run  func(text string, items []catalog.Item, r *Result) []zap.Field
}

var stages = []stage{
	{
		name: "extract",
		run: func(text string, _ []catalog.Item, r *Result) []zap.Field {
			r.Summary = rfp.Extract(text)
			return []zap.Field{
				zap.String("title", r.Summary.Title),
				zap.Int("compliance", len(r.Summary.Compliance)),
				zap.Int("requirements", len(r.Summary.Requirements)),
			}
		},
	},
	{
		name: "match",
		run: func(_ string, items []catalog.Item, r *Result) []zap.Field {
			r.Matches = matching.Rank(r.Summary, items)
			fields := []zap.Field{
				zap.Strings("dimensions", matching.Dimensions(r.Summary)),
				zap.Int("catalog", len(items)),
				zap.Int("matches", len(r.Matches)),
			}
			if len(r.Matches) > 0 {
				fields = append(fields,
					zap.String("top_sku", r.Matches[0].SKU),
					zap.Int("top_match", r.Matches[0].MatchPercentage),
				)
			}
			return fields
		},
	},
	{
		name: "price",
		run: func(_ string, _ []catalog.Item, r *Result) []zap.Field {
			estimate := pricing.Calculate(r.Matches)
			r.Pricing = estimate.Items
			r.GrandTotal = estimate.GrandTotal
			return []zap.Field{
				zap.Int("items", len(r.Pricing)),
				zap.Int64("grand_total", r.GrandTotal),
			}
		},
	},
}

// Evaluate runs all stages without logging or validation. It never fails.
func Evaluate(text string, cat *catalog.Catalog) *Result {
	return evaluate(text, cat.Items(), nil)
}

func evaluate(text string, items []catalog.Item, onStage func(name string, fields []zap.Field)) *Result {
	r := &Result{}
	for _, s := range stages {
		fields := s.run(text, items, r)
		if onStage != nil {
			onStage(s.name, fields)
		}
	}
	return r
}

// Pipeline processes RFPs against a shared read-only catalog.
type Pipeline struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

func New(cat *catalog.Catalog, log *zap.Logger) *Pipeline {
	if cat == nil {
		cat = catalog.Default()
	}

	return &Pipeline{
		catalog: cat,
		logger:  logger.WithFields(log),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.catalog
}

// Process validates the input, runs every stage and stamps the result with an
// identifier and processing time.
func (p *Pipeline) Process(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if text == "" {
		return nil, ErrEmptyText
	}

	id := p.newID()
	log := p.logger.With(zap.String(logger.FieldEstimateID, id))

	started := p.now()
	result := evaluate(text, p.catalog.Items(), func(name string, fields []zap.Field) {
		log.Debug("pipeline stage", append([]zap.Field{zap.String("stage", name)}, fields...)...)
	})

	processedAt := p.now().UTC()
	result.ID = id
	result.ProcessedAt = &processedAt

	log.Info("rfp processed",
		append(logger.EstimateFields("", result.Summary.Title),
			zap.Int("matches", len(result.Matches)),
			zap.Int("priced_items", len(result.Pricing)),
			zap.Int64("grand_total", result.GrandTotal),
			zap.Duration("took", processedAt.Sub(started.UTC())),
		)...,
	)

	return result, nil
}
