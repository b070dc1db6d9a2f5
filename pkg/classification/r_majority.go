package classification

// MajorityRule (rule C) finds the lowest mark attained across more than half
// of the combined credits: with both levels sorted descending, the entry just
// past the middle.
type MajorityRule struct{}

func (r *MajorityRule) Key() string  { return "majority_threshold" }
func (r *MajorityRule) Name() string { return "Mark attained in more than half of credits" }

func (r *MajorityRule) Evaluate(p PreparedMarks) RuleResult {
	all := make([]float64, 0, len(p.L5)+len(p.L6))
	all = append(all, p.L5...)
	all = append(all, p.L6...)

	result := RuleResult{Key: r.Key(), Name: r.Name()}
	if len(all) == 0 {
		result.Mark, result.Value = truncated(0)
		return result
	}

	all = sortedDesc(all)
	result.Mark, result.Value = truncated(all[len(all)/2])
	return result
}
