package rfp

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	titleMarkers   = []string{"rfp title:", "title:", "subject:"}
	dueDateMarkers = []string{"due date:", "deadline:", "submission date:"}

	// Tried in order, the first pattern with a match wins.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),
		regexp.MustCompile(`\d{2}-\d{2}-\d{4}`),
	}

	voltagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*kv`),
		regexp.MustCompile(`(?i)voltage[:\s]+(\d+(?:\.\d+)?)\s*kv`),
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*kv\s*rating`),
	}

	compliancePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)is\s*compliant`),
		regexp.MustCompile(`(?i)iec\s*\d+`),
		regexp.MustCompile(`(?i)ieee\s*\d+`),
		regexp.MustCompile(`(?i)astm\s*\w+`),
		regexp.MustCompile(`(?i)bs\s*\d+`),
		regexp.MustCompile(`(?i)iso\s*\d+`),
		regexp.MustCompile(`(?i)industrial\s*grade`),
	}

	requirementMarkers  = []string{"-", "*", "•"}
	skippedRequirements = []string{"rfp title", "due date"}
)

const (
	LowVoltage = "LV"
	Copper     = "Copper"
	Aluminium  = "Aluminium"
	XLPE       = "XLPE"
	PVC        = "PVC"
)

func extractTitle(doc *document) string {
	line, ok := findLine(doc.lines, titleMarkers)
	if !ok {
		return DefaultTitle
	}

	_, rest, _ := strings.Cut(line, ":")
	if title := strings.TrimSpace(rest); title != "" {
		return title
	}

	return DefaultTitle
}

func extractDueDate(doc *document) *string {
	line, ok := findLine(doc.lines, dueDateMarkers)
	if !ok {
		return nil
	}

	for _, pattern := range datePatterns {
		if date := pattern.FindString(line); date != "" {
			return ptr(date)
		}
	}

	return nil
}

func extractVoltage(doc *document) *string {
	for _, pattern := range voltagePatterns {
		if m := pattern.FindStringSubmatch(doc.text); m != nil {
			return ptr(fmt.Sprintf("%skV", m[1]))
		}
	}

	if strings.Contains(doc.lower, "low voltage") {
		return ptr(LowVoltage)
	}

	return nil
}

func extractMaterial(doc *document) *string {
	switch {
	case strings.Contains(doc.lower, "copper"):
		return ptr(Copper)
	case strings.Contains(doc.lower, "aluminium"), strings.Contains(doc.lower, "aluminum"):
		return ptr(Aluminium)
	default:
		return nil
	}
}

func extractInsulation(doc *document) *string {
	switch {
	case strings.Contains(doc.lower, "xlpe"):
		return ptr(XLPE)
	case strings.Contains(doc.lower, "pvc"):
		return ptr(PVC)
	default:
		return nil
	}
}

func extractCompliance(doc *document) []string {
	compliance := []string{}
	for _, pattern := range compliancePatterns {
		match := strings.TrimSpace(pattern.FindString(doc.text))
		if match == "" {
			continue
		}

		standard := normalizeStandard(match)
		if containsFold(compliance, standard) {
			continue
		}
		compliance = append(compliance, standard)
	}

	return compliance
}

func extractRequirements(doc *document) []string {
	requirements := []string{}
	for _, line := range doc.lines {
		marker, ok := leadingMarker(line)
		if !ok {
			continue
		}

		requirement := strings.TrimSpace(strings.TrimPrefix(line, marker))
		if requirement == "" {
			continue
		}

		lower := strings.ToLower(requirement)
		if containsAny(lower, skippedRequirements) {
			continue
		}

		requirements = append(requirements, requirement)
	}

	return requirements
}

// normalizeStandard upper-cases the first character and lower-cases the rest.
func normalizeStandard(s string) string {
	runes := []rune(s)
	return strings.ToUpper(string(runes[:1])) + strings.ToLower(string(runes[1:]))
}

func findLine(lines []string, markers []string) (string, bool) {
	for _, line := range lines {
		if containsAny(strings.ToLower(line), markers) {
			return line, true
		}
	}
	return "", false
}

func leadingMarker(line string) (string, bool) {
	for _, marker := range requirementMarkers {
		if strings.HasPrefix(line, marker) {
			return marker, true
		}
	}
	return "", false
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
