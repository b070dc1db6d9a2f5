package classification

// Level6MeanRule (rule B) is the mean of the Level 6 credits alone.
type Level6MeanRule struct{}

func (r *Level6MeanRule) Key() string  { return "level6_mean" }
func (r *Level6MeanRule) Name() string { return "Level 6 mean" }

func (r *Level6MeanRule) Evaluate(p PreparedMarks) RuleResult {
	mark, value := truncated(mean(p.L6))
	return RuleResult{
		Key:   r.Key(),
		Name:  r.Name(),
		Mark:  mark,
		Value: value,
	}
}
