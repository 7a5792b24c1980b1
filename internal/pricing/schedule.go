package pricing

import "strings"

// FeeRule charges Fee when the voltage rating contains Match.
type FeeRule struct {
	Match string
	Fee   int64
}

// Schedule is a priority-ordered list of testing fees; the first matching rule wins.
type Schedule struct {
	Rules   []FeeRule
	Default int64
}

var (
	PrimarySchedule = Schedule{
		Rules: []FeeRule{
			{Match: "33", Fee: 5000},
			{Match: "22", Fee: 3500},
			{Match: "11", Fee: 2500},
			{Match: "6.6", Fee: 2000},
		},
		Default: 1500,
	}

	SecondarySchedule = Schedule{
		Rules: []FeeRule{
			{Match: "33", Fee: 4000},
			{Match: "22", Fee: 3000},
			{Match: "11", Fee: 2000},
			{Match: "6.6", Fee: 1500},
		},
		Default: 1500,
	}
)

// Fee returns the testing fee for the voltage rating.
func (s Schedule) Fee(voltage string) int64 {
	for _, rule := range s.Rules {
		if strings.Contains(voltage, rule.Match) {
			return rule.Fee
		}
	}
	return s.Default
}
