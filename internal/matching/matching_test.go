package matching

import (
	"reflect"
	"testing"

	"github.com/spigell/rfp-responder/internal/catalog"
	"github.com/spigell/rfp-responder/internal/rfp"
)

func str(s string) *string { return &s }

func skus(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.SKU)
	}
	return out
}

func TestRankExactSpecification(t *testing.T) {
	summary := rfp.Summary{
		Voltage:    str("11kV"),
		Material:   str("Copper"),
		Insulation: str("XLPE"),
	}

	matches := Rank(summary, catalog.Default().Items())

	expect := []string{"CAB-11KV-CU-XLPE", "CAB-11KV-CU-PVC", "CAB-11KV-AL-XLPE"}
	if got := skus(matches); !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}

	percentages := []int{matches[0].MatchPercentage, matches[1].MatchPercentage, matches[2].MatchPercentage}
	if !reflect.DeepEqual(percentages, []int{100, 70, 70}) {
		t.Fatalf("unexpected percentages: %v", percentages)
	}

	top := matches[0]
	if top.BasePrice != 1200 || top.Material != "Copper" || top.Description == "" {
		t.Fatalf("match does not carry catalog attributes: %+v", top)
	}
}

func TestRankEveryItemScoresFullOnItsOwnSpec(t *testing.T) {
	items := catalog.Default().Items()
	for _, item := range items {
		summary := rfp.Summary{
			Voltage:    str(item.Voltage),
			Material:   str(item.Material),
			Insulation: str(item.Insulation),
		}

		if got := Score(summary, item); got != 100 {
			t.Fatalf("%s: expected 100, got %d", item.SKU, got)
		}

		matches := Rank(summary, items)
		if matches[0].MatchPercentage != 100 {
			t.Fatalf("%s: expected a 100%% top match, got %+v", item.SKU, matches[0])
		}
	}
}

func TestRankLengthAndOrdering(t *testing.T) {
	t.Parallel()

	full := catalog.Default().Items()
	summaries := []rfp.Summary{
		{},
		{Voltage: str("33kV")},
		{Material: str("Aluminium")},
		{Voltage: str("LV"), Insulation: str("PVC")},
		{Voltage: str("6.6 kV"), Material: str("copper"), Insulation: str("xlpe")},
	}

	for size := 0; size <= len(full); size++ {
		items := full[:size]
		for _, summary := range summaries {
			matches := Rank(summary, items)

			expectLen := size
			if expectLen > MaxMatches {
				expectLen = MaxMatches
			}
			if len(matches) != expectLen {
				t.Fatalf("catalog size %d: expected %d matches, got %d", size, expectLen, len(matches))
			}

			for i := 1; i < len(matches); i++ {
				if matches[i-1].MatchPercentage < matches[i].MatchPercentage {
					t.Fatalf("matches are not sorted: %+v", matches)
				}
			}
		}
	}
}

func TestRankEmptyCatalog(t *testing.T) {
	matches := Rank(rfp.Summary{Voltage: str("11kV")}, nil)
	if matches == nil || len(matches) != 0 {
		t.Fatalf("expected empty non-nil matches, got %#v", matches)
	}
}

func TestScoreVoltage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    string
		offered string
		expect  int
	}{
		{name: "exact", want: "11kV", offered: "11kV", expect: 100},
		{name: "whitespace and case", want: "11 KV", offered: "11kV", expect: 100},
		{name: "unrelated", want: "33kV", offered: "11kV", expect: 0},
		{name: "shared digits count as partial", want: "11kV", offered: "111kV", expect: 50},
		{name: "prefix overlap", want: "1kV", offered: "11kV", expect: 50},
		{name: "low voltage vs numeric", want: "LV", offered: "11kV", expect: 0},
		{name: "low voltage exact", want: "LV", offered: "LV", expect: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			summary := rfp.Summary{Voltage: str(tt.want)}
			item := catalog.Item{SKU: "X", Voltage: tt.offered, BasePrice: 1}
			if got := Score(summary, item); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestScoreWeightsAndRounding(t *testing.T) {
	t.Parallel()

	item := catalog.Item{SKU: "X", Voltage: "11kV", Material: "Copper", Insulation: "XLPE", BasePrice: 1}

	tests := []struct {
		name    string
		summary rfp.Summary
		expect  int
	}{
		{
			name:    "material only mismatch",
			summary: rfp.Summary{Material: str("Aluminium")},
			expect:  0,
		},
		{
			name:    "partial voltage and material",
			summary: rfp.Summary{Voltage: str("1kV"), Material: str("Copper")},
			expect:  71, // 50 of 70
		},
		{
			name:    "partial voltage only with material miss",
			summary: rfp.Summary{Voltage: str("1kV"), Material: str("Aluminium")},
			expect:  29, // 20 of 70
		},
		{
			name:    "voltage miss with material and insulation",
			summary: rfp.Summary{Voltage: str("33kV"), Material: str("COPPER"), Insulation: str("xlpe")},
			expect:  60,
		},
		{
			name:    "material and insulation",
			summary: rfp.Summary{Material: str("Copper"), Insulation: str("PVC")},
			expect:  50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tt.summary, item); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestScoreFallback(t *testing.T) {
	t.Parallel()

	item := catalog.Item{SKU: "X", Voltage: "11kV", Material: "Copper", Insulation: "XLPE", BasePrice: 1}

	tests := []struct {
		name         string
		requirements []string
		expect       int
	}{
		{name: "no requirements", requirements: nil, expect: 50},
		{name: "one keyword", requirements: []string{"needs XLPE sheath"}, expect: 65},
		{name: "keywords across lines", requirements: []string{"11KV feeder", "copper"}, expect: 80},
		{name: "all keywords", requirements: []string{"11kv copper xlpe"}, expect: 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			summary := rfp.Summary{Requirements: tt.requirements}
			if got := Score(summary, item); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestRankFallbackKeepsCatalogOrderOnTies(t *testing.T) {
	matches := Rank(rfp.Extract(""), catalog.Default().Items())

	expect := []string{"CAB-11KV-CU-XLPE", "CAB-6.6KV-AL-PVC", "CAB-11KV-CU-PVC"}
	if got := skus(matches); !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}

	for _, m := range matches {
		if m.MatchPercentage != FallbackBaseScore {
			t.Fatalf("expected fallback score for %s, got %d", m.SKU, m.MatchPercentage)
		}
	}
}

func TestRankFallbackUsesRequirementKeywords(t *testing.T) {
	summary := rfp.Extract("- LV feeder replacement\n- drum lengths of 250m")
	if summary.HasSpecs() {
		t.Fatalf("expected no specs, got %+v", summary)
	}

	matches := Rank(summary, catalog.Default().Items())
	if matches[0].SKU != "CAB-LV-CU-PVC" || matches[0].MatchPercentage != 65 {
		t.Fatalf("expected LV cable first at 65%%, got %+v", matches[0])
	}
}

func TestDimensions(t *testing.T) {
	got := Dimensions(rfp.Summary{Voltage: str("11kV"), Insulation: str("PVC")})
	if !reflect.DeepEqual(got, []string{"voltage", "insulation"}) {
		t.Fatalf("unexpected dimensions: %v", got)
	}

	if got := Dimensions(rfp.Summary{}); len(got) != 0 {
		t.Fatalf("expected no dimensions, got %v", got)
	}
}
