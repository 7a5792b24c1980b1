package rfp

const DefaultTitle = "Untitled RFP"

// Summary holds the requirements extracted from a single RFP document.
// Optional fields are nil when the document does not mention them.
type Summary struct {
	Title        string   `json:"title"`
	DueDate      *string  `json:"dueDate"`
	Voltage      *string  `json:"voltage"`
	Material     *string  `json:"material"`
	Insulation   *string  `json:"insulation"`
	Compliance   []string `json:"compliance"`
	Requirements []string `json:"requirements"`
}

// HasSpecs reports whether at least one of voltage, material or insulation was found.
func (s *Summary) HasSpecs() bool {
	return s.Voltage != nil || s.Material != nil || s.Insulation != nil
}

// Value dereferences an optional field, returning an empty string for nil.
func Value(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func ptr(s string) *string {
	return &s
}
