package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/degreecalc/degreecalc/pkg/classification"
)

// MarkdownRenderer produces Markdown reports suitable for exam board minutes.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, result *classification.Result) error {
	_, err := io.WriteString(w, buildResultMarkdown(result))
	return err
}

func (r *MarkdownRenderer) RenderCohort(w io.Writer, result *classification.CohortResult) error {
	_, err := io.WriteString(w, buildCohortMarkdown(result))
	return err
}

func buildResultMarkdown(result *classification.Result) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s — Final mark %s\n\n", result.Classification, result.FinalMark))
	sb.WriteString(fmt.Sprintf("GPA: **%s**\n\n", result.GPA))

	sb.WriteString("### Rules\n\n")
	sb.WriteString("| Rule | Mark | Selected |\n|------|------|----------|\n")
	for _, rr := range result.Rules {
		selected := ""
		if rr.Selected {
			selected = ":white_check_mark:"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", rr.Name, rr.Mark, selected))
	}
	sb.WriteString("\n")

	sb.WriteString("### Counted marks\n\n")
	sb.WriteString(fmt.Sprintf("- Level 5: %s\n", joinMarks(result.Prepared.L5)))
	sb.WriteString(fmt.Sprintf("- Level 6: %s\n", joinMarks(result.Prepared.L6)))

	return sb.String()
}

func buildCohortMarkdown(result *classification.CohortResult) string {
	var sb strings.Builder
	s := result.Summary

	name := s.Name
	if name == "" {
		name = "Cohort"
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", name))
	sb.WriteString(fmt.Sprintf("Classified %d of %d students (%d errors).\n\n", s.Classified, s.Total, s.Errored))

	sb.WriteString("### Bands\n\n")
	sb.WriteString("| Band | Students |\n|------|----------|\n")
	for i := len(classification.Bands) - 1; i >= 0; i-- {
		band := classification.Bands[i]
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", band, s.Bands[band]))
	}
	sb.WriteString("\n")

	if len(result.Students) > 0 {
		sb.WriteString("### Students\n\n")
		sb.WriteString("| Student | Final mark | GPA | Classification |\n|---------|------------|-----|----------------|\n")
		for _, sr := range result.Students {
			if sr.Result == nil {
				sb.WriteString(fmt.Sprintf("| %s | — | — | _%s_ |\n", studentLabel(sr), sr.Error))
				continue
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				studentLabel(sr), sr.Result.FinalMark, sr.Result.GPA, sr.Result.Classification))
		}
	}

	return sb.String()
}
