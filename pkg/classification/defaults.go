package classification

// DefaultRules returns the three regulatory rules in evaluation order.
func DefaultRules() []Rule {
	w := Defaults()
	return []Rule{
		&CombinedMeanRule{
			L5Weight: w.L5Weight,
			L6Weight: w.L6Weight,
		},
		&Level6MeanRule{},
		&MajorityRule{},
	}
}
