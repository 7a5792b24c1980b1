// Package rfp extracts structured cable requirements from free-text RFP documents.
package rfp

import "strings"

// document is the pre-split view of the RFP text shared by all rules.
// Rules only read from it.
type document struct {
	text  string
	lower string
	lines []string
}

func newDocument(text string) *document {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return &document{
		text:  text,
		lower: strings.ToLower(text),
		lines: lines,
	}
}

// rule fills a single field of the summary.
type rule struct {
	name  string
	apply func(doc *document, s *Summary)
}

var rules = []rule{
	{name: "title", apply: func(doc *document, s *Summary) { s.Title = extractTitle(doc) }},
	{name: "due_date", apply: func(doc *document, s *Summary) { s.DueDate = extractDueDate(doc) }},
	{name: "voltage", apply: func(doc *document, s *Summary) { s.Voltage = extractVoltage(doc) }},
	{name: "material", apply: func(doc *document, s *Summary) { s.Material = extractMaterial(doc) }},
	{name: "insulation", apply: func(doc *document, s *Summary) { s.Insulation = extractInsulation(doc) }},
	{name: "compliance", apply: func(doc *document, s *Summary) { s.Compliance = extractCompliance(doc) }},
	{name: "requirements", apply: func(doc *document, s *Summary) { s.Requirements = extractRequirements(doc) }},
}

// Rules returns the names of the extraction rules in evaluation order.
func Rules() []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.name)
	}
	return names
}

// Extract parses the RFP text into a Summary. It never fails: a field whose
// markers are absent keeps its default value.
func Extract(text string) Summary {
	doc := newDocument(text)

	summary := Summary{
		Title:        DefaultTitle,
		Compliance:   []string{},
		Requirements: []string{},
	}

	for _, r := range rules {
		r.apply(doc, &summary)
	}

	return summary
}
