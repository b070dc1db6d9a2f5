package classification

import "github.com/degreecalc/degreecalc/pkg/marks"

// Prepare discounts the worst credits at each level and derives grade points.
//
// Level 5 keeps the best five marks. Level 6 first pools the module marks
// with the final-year project counted once, keeps the best four of that pool,
// then adds the project a second time so it always carries 40 credits of
// weight in the final five.
func Prepare(rec marks.Record) (PreparedMarks, error) {
	w := Defaults()

	if len(rec.L5) < w.L5Keep {
		return PreparedMarks{}, &InsufficientCreditsError{Level: "L5", Got: len(rec.L5), Want: w.L5Keep}
	}
	if len(rec.L6)+1 < w.L6PoolKeep {
		return PreparedMarks{}, &InsufficientCreditsError{Level: "L6", Got: len(rec.L6) + 1, Want: w.L6PoolKeep}
	}

	l5 := sortedDesc(rec.L5)[:w.L5Keep]

	pool := sortedDesc(append(append([]float64(nil), rec.L6...), rec.FYP))
	l6 := sortedDesc(append(pool[:w.L6PoolKeep:w.L6PoolKeep], rec.FYP))

	return PreparedMarks{
		L5:    l5,
		L6:    l6,
		L5GPA: gradesToGPA(l5),
		L6GPA: gradesToGPA(l6),
	}, nil
}
