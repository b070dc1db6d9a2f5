// Package classification implements the degree classification engine.
// It prepares a student's marks, evaluates the regulatory rules, keeps the
// most favourable outcome and maps it to an honours band.
package classification

// Band is a named degree classification.
type Band string

const (
	BandFailed      Band = "Failed"
	BandThird       Band = "Third-class honours"
	BandLowerSecond Band = "Second-class honours (lower division)"
	BandUpperSecond Band = "Second-class honours (upper division)"
	BandFirst       Band = "First-class honours"
)

// Bands lists every band from lowest to highest.
var Bands = []Band{BandFailed, BandThird, BandLowerSecond, BandUpperSecond, BandFirst}

func (b Band) String() string { return string(b) }

// BandFromMark maps a final mark to its band. Each band includes its lower bound.
func BandFromMark(mark float64) Band {
	switch {
	case mark < 40:
		return BandFailed
	case mark < 50:
		return BandThird
	case mark < 60:
		return BandLowerSecond
	case mark < 70:
		return BandUpperSecond
	default:
		return BandFirst
	}
}

// PreparedMarks is the derived view of a record that every rule works from.
// A fresh value is built for each classification.
type PreparedMarks struct {
	L5    []float64 `json:"l5"`     // best 5 Level 5 marks, descending
	L6    []float64 `json:"l6"`     // 40-credit Level 6 pool, descending
	L5GPA []float64 `json:"l5_gpa"` // grade points for L5
	L6GPA []float64 `json:"l6_gpa"` // grade points for L6
}

// RuleResult is the outcome of a single classification rule.
type RuleResult struct {
	Key      string  `json:"key"`  // machine key: "level6_mean"
	Name     string  `json:"name"` // human name: "Level 6 mean"
	Mark     string  `json:"mark"` // truncated to 2 decimals
	Value    float64 `json:"value"`
	Selected bool    `json:"selected"`
}

// Result is the complete output of classifying one record.
// Immutable once computed.
type Result struct {
	FinalMark      string        `json:"final_mark"`
	Classification Band          `json:"classification"`
	GPA            string        `json:"gpa"`
	SelectedRule   string        `json:"selected_rule"`
	Rules          []RuleResult  `json:"rules"`
	Prepared       PreparedMarks `json:"prepared"`
}
