// Package cohort runs a whole cohort through the classification engine,
// persisting each result and archiving the cohort report.
package cohort

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/degreecalc/degreecalc/internal/archive"
	"github.com/degreecalc/degreecalc/internal/records"
	"github.com/degreecalc/degreecalc/pkg/classification"
	"github.com/degreecalc/degreecalc/pkg/marks"
	"github.com/degreecalc/degreecalc/pkg/surface"
)

// ResultStore is the subset of records.Service used by cohort processing.
type ResultStore interface {
	SaveResult(ctx context.Context, row *records.ResultRow) error
	CreateRun(ctx context.Context, cohortName string, total int, status string) (*records.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, u records.RunUpdate) error
}

// Classifier abstracts the engine so tests can substitute their own rules.
type Classifier interface {
	ClassifyCohort(c marks.Cohort) *classification.CohortResult
}

// Outcome is what Process returns for a finished run.
type Outcome struct {
	Run    *records.Run                 `json:"run"`
	Report *classification.CohortResult `json:"report"`
	// ResultIDs maps student ID to the stored result ID.
	ResultIDs map[string]string `json:"result_ids"`
}

// Service orchestrates cohort runs.
type Service struct {
	store      ResultStore
	archive    archive.Store
	classifier Classifier
	log        zerolog.Logger
}

// NewService creates a new cohort Service.
func NewService(store ResultStore, reports archive.Store, classifier Classifier, log zerolog.Logger) *Service {
	return &Service{
		store:      store,
		archive:    reports,
		classifier: classifier,
		log:        log.With().Str("component", "cohort").Logger(),
	}
}

// Process classifies every student in c, stores each classified result
// against a new run, archives the JSON report and marks the run COMPLETED.
// Students that cannot be classified are counted as errored and do not fail
// the run; storage failures do.
func (s *Service) Process(ctx context.Context, c marks.Cohort) (out *Outcome, err error) {
	run, err := s.store.CreateRun(ctx, c.Name, len(c.Students), records.StatusQueued)
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	log := s.log.With().Str("run_id", run.ID).Str("cohort", c.Name).Logger()

	var report *classification.CohortResult

	// On failure, mark run as failed. The update must land even when the
	// caller's context was cancelled mid-run.
	defer func() {
		if err == nil {
			return
		}
		u := records.RunUpdate{Status: records.StatusFailed, Error: err.Error()}
		if report != nil {
			u.Classified = report.Summary.Classified
			u.Errored = report.Summary.Errored
		}
		if updateErr := s.store.UpdateRunStatus(context.WithoutCancel(ctx), run.ID, u); updateErr != nil {
			log.Error().Err(updateErr).Msg("failed to update run status")
		}
	}()

	if err := s.store.UpdateRunStatus(ctx, run.ID, records.RunUpdate{Status: records.StatusRunning}); err != nil {
		return nil, fmt.Errorf("update status to running: %w", err)
	}
	run.Status = records.StatusRunning

	report = s.classifier.ClassifyCohort(c)

	ids := make(map[string]string, report.Summary.Classified)
	for _, sr := range report.Students {
		if sr.Result == nil {
			log.Debug().Str("student_id", sr.StudentID).Str("error", sr.Error).Msg("student not classified")
			continue
		}
		row, err := records.NewResultRow(sr.StudentID, run.ID, sr.Result)
		if err != nil {
			return nil, fmt.Errorf("student %s: %w", sr.StudentID, err)
		}
		if err := s.store.SaveResult(ctx, row); err != nil {
			return nil, fmt.Errorf("student %s: %w", sr.StudentID, err)
		}
		ids[sr.StudentID] = row.ID
	}

	var buf bytes.Buffer
	if err := (&surface.JSONRenderer{}).RenderCohort(&buf, report); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	if err := s.archive.PutReport(ctx, run.ID, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("archive report: %w", err)
	}

	done := records.RunUpdate{
		Status:     records.StatusCompleted,
		Classified: report.Summary.Classified,
		Errored:    report.Summary.Errored,
	}
	if err := s.store.UpdateRunStatus(ctx, run.ID, done); err != nil {
		return nil, fmt.Errorf("update status to completed: %w", err)
	}
	run.Status = done.Status
	run.Classified = done.Classified
	run.Errored = done.Errored

	log.Info().
		Int("total", report.Summary.Total).
		Int("classified", report.Summary.Classified).
		Int("errored", report.Summary.Errored).
		Msg("cohort run completed")

	return &Outcome{Run: run, Report: report, ResultIDs: ids}, nil
}
