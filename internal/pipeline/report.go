package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spigell/rfp-responder/internal/rfp"
)

const noValue = "-"

// WriteJSON encodes the result as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "rfp_estimate_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := r.WriteJSON(file); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToFile writes the result as JSON to path, replacing any existing content.
func (r *Result) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return r.WriteJSON(file)
}

// SummaryReport renders the extracted requirements.
func (r *Result) SummaryReport() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	s := r.Summary
	fmt.Fprintf(w, "Title:\t%s\n", s.Title)
	fmt.Fprintf(w, "Due date:\t%s\n", orNone(s.DueDate))
	fmt.Fprintf(w, "Voltage:\t%s\n", orNone(s.Voltage))
	fmt.Fprintf(w, "Material:\t%s\n", orNone(s.Material))
	fmt.Fprintf(w, "Insulation:\t%s\n", orNone(s.Insulation))
	fmt.Fprintf(w, "Compliance:\t%s\n", joinOrNone(s.Compliance, ", "))
	w.Flush()

	if len(s.Requirements) > 0 {
		b.WriteString("Requirements:\n")
		for _, req := range s.Requirements {
			fmt.Fprintf(&b, "  - %s\n", req)
		}
	}

	return b.String()
}

// MatchesReport renders the ranked catalog matches.
func (r *Result) MatchesReport() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "#\tSKU\tMATCH\tVOLTAGE\tMATERIAL\tINSULATION\tBASE PRICE")
	for idx, m := range r.Matches {
		fmt.Fprintf(w, "%d\t%s\t%d%%\t%s\t%s\t%s\t%d\n",
			idx+1, m.SKU, m.MatchPercentage, m.Voltage, m.Material, m.Insulation, m.BasePrice)
	}
	w.Flush()

	return b.String()
}

// PricingReport renders the cost breakdown and grand total.
func (r *Result) PricingReport() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w, "SKU\tQTY\tBASE\tMATERIAL\tSERVICE\tTESTING\tTOTAL\t")
	for _, item := range r.Pricing {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t\n",
			item.SKU, item.Quantity, item.BasePrice*item.Quantity,
			item.MaterialCost, item.ServiceCost, item.TestingCost, item.TotalCost)
	}
	fmt.Fprintf(w, "GRAND TOTAL\t\t\t\t\t\t%d\t\n", r.GrandTotal)
	w.Flush()

	return b.String()
}

// Report renders summary, matches and pricing as one text document.
func (r *Result) Report() string {
	return strings.Join([]string{r.SummaryReport(), r.MatchesReport(), r.PricingReport()}, "\n")
}

func orNone(v *string) string {
	if s := rfp.Value(v); s != "" {
		return s
	}
	return noValue
}

func joinOrNone(items []string, sep string) string {
	if len(items) == 0 {
		return noValue
	}
	return strings.Join(items, sep)
}
