package classification

// CombinedMeanRule (rule A) weights the Level 5 and Level 6 means, after
// discounting the worst 20 credits at each level.
type CombinedMeanRule struct {
	L5Weight float64
	L6Weight float64
}

func (r *CombinedMeanRule) Key() string  { return "combined_weighted_mean" }
func (r *CombinedMeanRule) Name() string { return "Weighted mean of Level 5 and Level 6" }

func (r *CombinedMeanRule) Evaluate(p PreparedMarks) RuleResult {
	mark, value := truncated(mean(p.L5)*r.L5Weight + mean(p.L6)*r.L6Weight)
	return RuleResult{
		Key:   r.Key(),
		Name:  r.Name(),
		Mark:  mark,
		Value: value,
	}
}
