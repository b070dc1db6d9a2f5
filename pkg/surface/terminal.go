package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/degreecalc/degreecalc/pkg/classification"
)

// TerminalRenderer renders results as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func bandColor(band classification.Band) string {
	if noColor() {
		return ""
	}
	switch band {
	case classification.BandFirst, classification.BandUpperSecond:
		return colorGreen
	case classification.BandLowerSecond, classification.BandThird:
		return colorYellow
	case classification.BandFailed:
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *classification.Result) error {
	bc := bandColor(result.Classification)

	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Classification: %s — Final mark %s",
			colored(result.Classification.String(), bc), result.FinalMark)))

	fmt.Fprintf(w, "GPA: %s\n\n", result.GPA)

	fmt.Fprintln(w, "Rules:")
	for _, rr := range result.Rules {
		marker := " "
		name := rr.Name
		if rr.Selected {
			marker = colored("●", bc)
			name = bold(name)
		}
		fmt.Fprintf(w, "  %s %6s  %s\n", marker, rr.Mark, name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Counted marks:")
	fmt.Fprintf(w, "  Level 5  %s\n", dim(joinMarks(result.Prepared.L5)))
	fmt.Fprintf(w, "  Level 6  %s\n", dim(joinMarks(result.Prepared.L6)))
	fmt.Fprintln(w)

	return nil
}

func (r *TerminalRenderer) RenderCohort(w io.Writer, result *classification.CohortResult) error {
	s := result.Summary
	title := "Cohort"
	if s.Name != "" {
		title = "Cohort: " + s.Name
	}
	fmt.Fprintf(w, "%s\n\n", bold(title))
	fmt.Fprintf(w, "Classified %d of %d students (%d errors)\n\n", s.Classified, s.Total, s.Errored)

	if s.Classified > 0 {
		fmt.Fprintln(w, "Bands:")
		for i := len(classification.Bands) - 1; i >= 0; i-- {
			band := classification.Bands[i]
			if n := s.Bands[band]; n > 0 {
				fmt.Fprintf(w, "  %3d  %s\n", n, colored(band.String(), bandColor(band)))
			}
		}
		fmt.Fprintln(w)
	}

	if len(result.Students) == 0 {
		fmt.Fprintln(w, "No students.")
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprintln(w, "Students:")
	for _, sr := range result.Students {
		label := studentLabel(sr)
		if sr.Result == nil {
			fmt.Fprintf(w, "  %-24s %s\n", label, colored("error: "+sr.Error, colorRed))
			continue
		}
		res := sr.Result
		fmt.Fprintf(w, "  %-24s %6s  GPA %s  %s\n",
			label, res.FinalMark, res.GPA, colored(res.Classification.String(), bandColor(res.Classification)))
	}
	fmt.Fprintln(w)

	return nil
}

func studentLabel(sr classification.StudentResult) string {
	if sr.Name == "" {
		return sr.StudentID
	}
	return sr.StudentID + " (" + sr.Name + ")"
}

func joinMarks(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return strings.Join(parts, ", ")
}
