// Package surface defines output rendering for classification results.
// Implementations handle different output targets: terminal, Markdown, JSON.
package surface

import (
	"fmt"
	"io"

	"github.com/degreecalc/degreecalc/pkg/classification"
)

// Renderer produces formatted output from a single classification Result.
type Renderer interface {
	// Render writes the formatted result to the writer.
	Render(w io.Writer, result *classification.Result) error
	// RenderCohort writes a cohort report to the writer.
	RenderCohort(w io.Writer, result *classification.CohortResult) error
}

// ForFormat returns the renderer for an output format name.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case "", "text":
		return &TerminalRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or markdown)", format)
	}
}
