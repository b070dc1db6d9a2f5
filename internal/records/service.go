// Package records persists classification results and cohort runs in Postgres.
package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/degreecalc/degreecalc/pkg/classification"
)

// Run lifecycle statuses.
const (
	StatusQueued    = "QUEUED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Service provides result and cohort-run storage backed by Postgres.
type Service struct {
	db *sql.DB
}

// ResultRow is a stored classification result.
type ResultRow struct {
	ID             string          `json:"id"`
	StudentID      *string         `json:"student_id,omitempty"`
	RunID          *string         `json:"run_id,omitempty"`
	FinalMark      string          `json:"final_mark"`
	Classification string          `json:"classification"`
	GPA            string          `json:"gpa"`
	SelectedRule   string          `json:"selected_rule"`
	Result         json.RawMessage `json:"result"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Run is a cohort processing run.
type Run struct {
	ID         string    `json:"id"`
	CohortName string    `json:"cohort_name"`
	Status     string    `json:"status"`
	Total      int       `json:"total"`
	Classified int       `json:"classified"`
	Errored    int       `json:"errored"`
	Error      *string   `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RunUpdate carries the fields written by UpdateRunStatus.
type RunUpdate struct {
	Status     string
	Classified int
	Errored    int
	Error      string
}

// NewService creates a new records Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// NewResultRow converts an engine result into a row with a fresh ID.
// studentID and runID may be empty.
func NewResultRow(studentID, runID string, res *classification.Result) (*ResultRow, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return &ResultRow{
		ID:             uuid.NewString(),
		StudentID:      optional(studentID),
		RunID:          optional(runID),
		FinalMark:      res.FinalMark,
		Classification: res.Classification.String(),
		GPA:            res.GPA,
		SelectedRule:   res.SelectedRule,
		Result:         data,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SaveResult inserts a result row and fills in its CreatedAt.
func (s *Service) SaveResult(ctx context.Context, row *ResultRow) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO classification_results
		   (id, student_id, run_id, final_mark, classification, gpa, selected_rule, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		row.ID, row.StudentID, row.RunID, row.FinalMark, row.Classification,
		row.GPA, row.SelectedRule, []byte(row.Result),
	).Scan(&row.CreatedAt)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// GetResult returns a single result by ID. A missing row wraps sql.ErrNoRows.
func (s *Service) GetResult(ctx context.Context, resultID string) (*ResultRow, error) {
	r := &ResultRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, student_id, run_id, final_mark, classification, gpa, selected_rule, result, created_at
		 FROM classification_results WHERE id = $1`,
		resultID,
	).Scan(
		&r.ID, &r.StudentID, &r.RunID, &r.FinalMark, &r.Classification,
		&r.GPA, &r.SelectedRule, &r.Result, &r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get result %s: %w", resultID, err)
	}
	return r, nil
}

// ListStudentResults returns all results for a student, newest first.
func (s *Service) ListStudentResults(ctx context.Context, studentID string) ([]ResultRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, run_id, final_mark, classification, gpa, selected_rule, result, created_at
		 FROM classification_results WHERE student_id = $1 ORDER BY created_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []ResultRow
	for rows.Next() {
		var r ResultRow
		if err := rows.Scan(
			&r.ID, &r.StudentID, &r.RunID, &r.FinalMark, &r.Classification,
			&r.GPA, &r.SelectedRule, &r.Result, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// CreateRun inserts a new cohort run with the given status.
func (s *Service) CreateRun(ctx context.Context, cohortName string, total int, status string) (*Run, error) {
	run := &Run{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO cohort_runs (id, cohort_name, status, total)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, cohort_name, status, total, classified, errored, error, created_at, updated_at`,
		uuid.NewString(), cohortName, status, total,
	).Scan(
		&run.ID, &run.CohortName, &run.Status, &run.Total, &run.Classified,
		&run.Errored, &run.Error, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return run, nil
}

// UpdateRunStatus records progress or a terminal status for a run.
func (s *Service) UpdateRunStatus(ctx context.Context, runID string, u RunUpdate) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cohort_runs
		 SET status = $2, classified = $3, errored = $4, error = $5, updated_at = now()
		 WHERE id = $1`,
		runID, u.Status, u.Classified, u.Errored, optional(u.Error),
	)
	if err != nil {
		return fmt.Errorf("update run %s: %w", runID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update run %s: %w", runID, sql.ErrNoRows)
	}
	return nil
}

// GetRun returns a cohort run by ID. A missing row wraps sql.ErrNoRows.
func (s *Service) GetRun(ctx context.Context, runID string) (*Run, error) {
	run := &Run{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, cohort_name, status, total, classified, errored, error, created_at, updated_at
		 FROM cohort_runs WHERE id = $1`,
		runID,
	).Scan(
		&run.ID, &run.CohortName, &run.Status, &run.Total, &run.Classified,
		&run.Errored, &run.Error, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	return run, nil
}
