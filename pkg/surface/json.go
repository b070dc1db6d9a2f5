package surface

import (
	"encoding/json"
	"io"

	"github.com/degreecalc/degreecalc/pkg/classification"
)

// JSONRenderer marshals results to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *classification.Result) error {
	return writeJSON(w, result)
}

func (r *JSONRenderer) RenderCohort(w io.Writer, result *classification.CohortResult) error {
	return writeJSON(w, result)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
