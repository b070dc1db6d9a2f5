package classification

import (
	"errors"
	"fmt"

	"github.com/degreecalc/degreecalc/pkg/marks"
)

// Rule is the interface that all classification rules implement.
type Rule interface {
	// Key returns the machine-readable rule identifier.
	Key() string
	// Name returns the human-readable rule name.
	Name() string
	// Evaluate computes the rule's candidate final mark.
	Evaluate(p PreparedMarks) RuleResult
}

// Engine evaluates the configured rules and keeps the most favourable one.
// An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	rules  []Rule
	strict bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the default rule set.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithStrictRange rejects marks outside 0-100 with *InvalidMarkRangeError.
func WithStrictRange() Option {
	return func(e *Engine) { e.strict = true }
}

// NewEngine creates an engine with the default rules unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{rules: DefaultRules()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Strict reports whether the engine enforces the 0-100 mark range.
func (e *Engine) Strict() bool { return e.strict }

// Classify prepares the record, runs every rule and selects the highest mark.
func (e *Engine) Classify(rec marks.Record) (*Result, error) {
	if len(e.rules) == 0 {
		return nil, fmt.Errorf("no classification rules configured")
	}

	if e.strict {
		if err := marks.Validate(rec); err != nil {
			var fe marks.FieldErrors
			if errors.As(err, &fe) && len(fe) > 0 {
				return nil, newInvalidMarkRangeError(fe)
			}
			return nil, fmt.Errorf("validating marks: %w", err)
		}
	}

	prepared, err := Prepare(rec)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Prepared: prepared,
		Rules:    make([]RuleResult, 0, len(e.rules)),
	}

	best := -1
	for i, r := range e.rules {
		rr := r.Evaluate(prepared)
		result.Rules = append(result.Rules, rr)
		// Ties keep the earlier rule.
		if best < 0 || rr.Value > result.Rules[best].Value {
			best = i
		}
	}

	result.Rules[best].Selected = true
	result.SelectedRule = result.Rules[best].Key
	result.FinalMark = result.Rules[best].Mark
	result.Classification = BandFromMark(result.Rules[best].Value)
	result.GPA = GPA(prepared)

	return result, nil
}
