package classification

import (
	"fmt"

	"github.com/degreecalc/degreecalc/pkg/marks"
)

// InsufficientCreditsError reports that a level has too few marks to fill
// its fixed selection.
type InsufficientCreditsError struct {
	Level string // "L5" or "L6"
	Got   int
	Want  int
}

func (e *InsufficientCreditsError) Error() string {
	if e.Level == "L6" {
		return fmt.Sprintf("insufficient credits at L6: %d marks including the final-year project, need at least %d", e.Got, e.Want)
	}
	return fmt.Sprintf("insufficient credits at %s: %d marks, need at least %d", e.Level, e.Got, e.Want)
}

// InvalidMarkRangeError reports marks outside 0-100. Only engines built with
// WithStrictRange return it.
type InvalidMarkRangeError struct {
	Field string  // first offending field
	Index int     // -1 for the final-year project
	Mark  float64 // first offending mark
	All   marks.FieldErrors
}

func (e *InvalidMarkRangeError) Error() string {
	if len(e.All) > 1 {
		return fmt.Sprintf("invalid mark range: %s (and %d more)", e.All[0], len(e.All)-1)
	}
	if len(e.All) == 1 {
		return fmt.Sprintf("invalid mark range: %s", e.All[0])
	}
	return fmt.Sprintf("invalid mark range: %s=%g", e.Field, e.Mark)
}

func (e *InvalidMarkRangeError) Unwrap() error {
	if len(e.All) == 0 {
		return nil
	}
	return e.All
}

func newInvalidMarkRangeError(all marks.FieldErrors) *InvalidMarkRangeError {
	first := all[0]
	return &InvalidMarkRangeError{
		Field: first.Field,
		Index: first.Index,
		Mark:  first.Value,
		All:   all,
	}
}
