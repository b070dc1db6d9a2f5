package api

import (
	"errors"
	"net/http"

	"github.com/degreecalc/degreecalc/internal/records"
	"github.com/degreecalc/degreecalc/pkg/classification"
	"github.com/degreecalc/degreecalc/pkg/marks"
)

// classifyRequest is the JSON body for POST /api/v1/classify: a mark record
// with an optional student ID.
type classifyRequest struct {
	StudentID string `json:"student_id,omitempty"`
	marks.Record
}

type classifyResponse struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id,omitempty"`
	*classification.Result
}

func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.engine.Classify(req.Record)
	if err != nil {
		writeError(w, classifyStatus(err), err.Error())
		return
	}

	row, err := records.NewResultRow(req.StudentID, "", res)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.store.SaveResult(r.Context(), row); err != nil {
		h.log.Error().Err(err).Msg("save result")
		writeError(w, http.StatusInternalServerError, "failed to store result")
		return
	}
	h.cache.Put(row.ID, row)

	writeJSON(w, http.StatusCreated, classifyResponse{
		ID:        row.ID,
		StudentID: req.StudentID,
		Result:    res,
	})
}

// classifyStatus maps engine errors to HTTP status codes.
func classifyStatus(err error) int {
	var credits *classification.InsufficientCreditsError
	var markRange *classification.InvalidMarkRangeError
	if errors.As(err, &credits) || errors.As(err, &markRange) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
