package records_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/degreecalc/degreecalc/internal/platform"
	"github.com/degreecalc/degreecalc/internal/records"
	"github.com/degreecalc/degreecalc/pkg/classification"
	"github.com/degreecalc/degreecalc/pkg/marks"
)

func classified(t *testing.T) *classification.Result {
	t.Helper()
	res, err := classification.NewEngine().Classify(marks.Record{
		L5:  []float64{45, 56, 67, 78, 89, 90},
		L6:  []float64{56, 67, 78, 89},
		FYP: 68,
	})
	require.NoError(t, err)
	return res
}

func TestNewResultRow(t *testing.T) {
	res := classified(t)

	row, err := records.NewResultRow("s1", "", res)
	require.NoError(t, err)

	_, err = uuid.Parse(row.ID)
	assert.NoError(t, err, "row ID should be a UUID")
	require.NotNil(t, row.StudentID)
	assert.Equal(t, "s1", *row.StudentID)
	assert.Nil(t, row.RunID)
	assert.Equal(t, "74.80", row.FinalMark)
	assert.Equal(t, "First-class honours", row.Classification)
	assert.Equal(t, "3.91", row.GPA)
	assert.Equal(t, "combined_weighted_mean", row.SelectedRule)

	var decoded classification.Result
	require.NoError(t, json.Unmarshal(row.Result, &decoded))
	assert.Equal(t, res.FinalMark, decoded.FinalMark)
	assert.Len(t, decoded.Rules, 3)
}

func TestNewResultRowDistinctIDs(t *testing.T) {
	res := classified(t)
	a, err := records.NewResultRow("", "", res)
	require.NoError(t, err)
	b, err := records.NewResultRow("", "", res)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Nil(t, a.StudentID)
}

// openTestDB connects to DEGREECALC_TEST_DATABASE_URL and applies migrations,
// skipping the test when no database is configured.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DEGREECALC_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("DEGREECALC_TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, platform.AutoMigrate(db))
	return db
}

func TestServiceResults(t *testing.T) {
	db := openTestDB(t)
	svc := records.NewService(db)
	ctx := context.Background()

	student := "student-" + uuid.NewString()
	res := classified(t)

	first, err := records.NewResultRow(student, "", res)
	require.NoError(t, err)
	require.NoError(t, svc.SaveResult(ctx, first))
	assert.False(t, first.CreatedAt.IsZero())

	second, err := records.NewResultRow(student, "", res)
	require.NoError(t, err)
	require.NoError(t, svc.SaveResult(ctx, second))

	got, err := svc.GetResult(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "74.80", got.FinalMark)
	assert.JSONEq(t, string(first.Result), string(got.Result))

	list, err := svc.ListStudentResults(ctx, student)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")

	_, err = svc.GetResult(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestServiceRuns(t *testing.T) {
	db := openTestDB(t)
	svc := records.NewService(db)
	ctx := context.Background()

	run, err := svc.CreateRun(ctx, "BSc Computing", 3, records.StatusRunning)
	require.NoError(t, err)
	assert.Equal(t, records.StatusRunning, run.Status)
	assert.Equal(t, 3, run.Total)

	require.NoError(t, svc.UpdateRunStatus(ctx, run.ID, records.RunUpdate{
		Status: records.StatusFailed, Classified: 2, Errored: 1, Error: "archive unavailable",
	}))

	got, err := svc.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, records.StatusFailed, got.Status)
	assert.Equal(t, 2, got.Classified)
	assert.Equal(t, 1, got.Errored)
	require.NotNil(t, got.Error)
	assert.Equal(t, "archive unavailable", *got.Error)

	err = svc.UpdateRunStatus(ctx, uuid.NewString(), records.RunUpdate{Status: records.StatusCompleted})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
