// Package matching scores catalog items against extracted RFP requirements.
package matching

import (
	"sort"
	"strings"

	"github.com/spigell/rfp-responder/internal/catalog"
	"github.com/spigell/rfp-responder/internal/rfp"
)

const (
	VoltageWeight       = 40
	VoltagePartialScore = 20
	MaterialWeight      = 30
	InsulationWeight    = 30

	// Used when the summary carries no voltage, material or insulation.
	FallbackBaseScore    = 50
	FallbackKeywordBonus = 15

	MaxMatches = 3
)

// Match is a catalog item together with how well it satisfies the requirements.
type Match struct {
	SKU             string `json:"sku"`
	Description     string `json:"description"`
	MatchPercentage int    `json:"matchPercentage"`
	Voltage         string `json:"voltage"`
	Material        string `json:"material"`
	Insulation      string `json:"insulation"`
	BasePrice       int64  `json:"basePrice"`
}

// dimension compares one requirement against one catalog attribute.
// required is empty when the summary does not specify the dimension.
type dimension struct {
	name     string
	weight   int
	required func(s *rfp.Summary) string
	offered  func(item catalog.Item) string
	score    func(required, offered string) int
}

var dimensions = []dimension{
	{
		name:     "voltage",
		weight:   VoltageWeight,
		required: func(s *rfp.Summary) string { return rfp.Value(s.Voltage) },
		offered:  func(item catalog.Item) string { return item.Voltage },
		score:    scoreVoltage,
	},
	{
		name:     "material",
		weight:   MaterialWeight,
		required: func(s *rfp.Summary) string { return rfp.Value(s.Material) },
		offered:  func(item catalog.Item) string { return item.Material },
		score:    exactScore(MaterialWeight),
	},
	{
		name:     "insulation",
		weight:   InsulationWeight,
		required: func(s *rfp.Summary) string { return rfp.Value(s.Insulation) },
		offered:  func(item catalog.Item) string { return item.Insulation },
		score:    exactScore(InsulationWeight),
	},
}

// Rank scores every item and returns at most MaxMatches results ordered by
// match percentage. Items with equal percentages keep their catalog order.
func Rank(summary rfp.Summary, items []catalog.Item) []Match {
	matches := make([]Match, 0, len(items))
	for _, item := range items {
		matches = append(matches, Match{
			SKU:             item.SKU,
			Description:     item.Description,
			MatchPercentage: Score(summary, item),
			Voltage:         item.Voltage,
			Material:        item.Material,
			Insulation:      item.Insulation,
			BasePrice:       item.BasePrice,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercentage > matches[j].MatchPercentage
	})

	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}

	return matches
}

// Score returns the match percentage (0-100) of a single item.
func Score(summary rfp.Summary, item catalog.Item) int {
	score, maxScore := 0, 0
	for _, d := range dimensions {
		required := d.required(&summary)
		if required == "" {
			continue
		}
		maxScore += d.weight
		score += d.score(required, d.offered(item))
	}

	if maxScore == 0 {
		return fallbackScore(summary.Requirements, item)
	}

	return roundPercent(score, maxScore)
}

// Dimensions returns the names of the dimensions the summary specifies, in
// scoring order.
func Dimensions(summary rfp.Summary) []string {
	names := []string{}
	for _, d := range dimensions {
		if d.required(&summary) != "" {
			names = append(names, d.name)
		}
	}
	return names
}

func scoreVoltage(required, offered string) int {
	want := normalizeVoltage(required)
	have := normalizeVoltage(offered)

	if want == have {
		return VoltageWeight
	}

	if strings.Contains(want, strings.Replace(have, "kv", "", 1)) ||
		strings.Contains(have, strings.Replace(want, "kv", "", 1)) {
		return VoltagePartialScore
	}

	return 0
}

func exactScore(weight int) func(required, offered string) int {
	return func(required, offered string) int {
		if strings.EqualFold(required, offered) {
			return weight
		}
		return 0
	}
}

// fallbackScore looks for the item attributes in the free-text requirement lines.
func fallbackScore(requirements []string, item catalog.Item) int {
	text := strings.ToLower(strings.Join(requirements, " "))

	score := FallbackBaseScore
	for _, attr := range []string{item.Voltage, item.Material, item.Insulation} {
		if strings.Contains(text, strings.ToLower(attr)) {
			score += FallbackKeywordBonus
		}
	}

	return score
}

func normalizeVoltage(v string) string {
	return strings.Join(strings.Fields(strings.ToLower(v)), "")
}

// roundPercent rounds score/maxScore*100 half up using integer math.
func roundPercent(score, maxScore int) int {
	return (score*200 + maxScore) / (maxScore * 2)
}
