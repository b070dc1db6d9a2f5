package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/degreecalc/degreecalc/internal/records"
	"github.com/degreecalc/degreecalc/pkg/classification"
)

func (h *Handler) handleGetResult(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "resultID")
	if _, err := uuid.Parse(resultID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid result id")
		return
	}

	if row := h.cache.Get(resultID); row != nil {
		writeJSON(w, http.StatusOK, row)
		return
	}

	row, err := h.store.GetResult(r.Context(), resultID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "result not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load result")
		return
	}
	h.cache.Put(resultID, row)

	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) handleStudentResults(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	rows, err := h.store.ListStudentResults(r.Context(), studentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list results")
		return
	}
	if rows == nil {
		rows = []records.ResultRow{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"student_id": studentID,
		"results":    rows,
	})
}

func (h *Handler) handleGPAZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, classification.Zones())
}
