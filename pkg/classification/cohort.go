package classification

import "github.com/degreecalc/degreecalc/pkg/marks"

// StudentResult is one student's outcome within a cohort. Exactly one of
// Result and Error is set.
type StudentResult struct {
	StudentID string  `json:"student_id"`
	Name      string  `json:"name,omitempty"`
	Result    *Result `json:"result,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// CohortSummary counts outcomes per band.
type CohortSummary struct {
	Name       string       `json:"name"`
	Total      int          `json:"total"`
	Classified int          `json:"classified"`
	Errored    int          `json:"errored"`
	Bands      map[Band]int `json:"bands"`
}

// CohortResult is the complete output of classifying a cohort.
type CohortResult struct {
	Summary  CohortSummary   `json:"summary"`
	Students []StudentResult `json:"students"`
}

// ClassifyCohort classifies every student in order. A student whose marks
// cannot be classified is reported with an error and does not stop the batch.
func (e *Engine) ClassifyCohort(c marks.Cohort) *CohortResult {
	out := &CohortResult{
		Summary: CohortSummary{
			Name:  c.Name,
			Total: len(c.Students),
			Bands: make(map[Band]int, len(Bands)),
		},
		Students: make([]StudentResult, 0, len(c.Students)),
	}

	for _, s := range c.Students {
		sr := StudentResult{StudentID: s.StudentID, Name: s.Name}
		res, err := e.Classify(s.Marks)
		if err != nil {
			sr.Error = err.Error()
			out.Summary.Errored++
		} else {
			sr.Result = res
			out.Summary.Classified++
			out.Summary.Bands[res.Classification]++
		}
		out.Students = append(out.Students, sr)
	}

	return out
}
