package marks_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/degreecalc/degreecalc/pkg/marks"
)

func TestLoadRecord(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr bool
		want    marks.Record
	}{
		{
			name: "yaml",
			file: "rec.yaml",
			content: `
l5: [45, 56, 67, 78, 89, 90]
l6: [56, 67, 78, 89]
fyp: 68
gip: 55
`,
			want: marks.Record{
				L5:  []float64{45, 56, 67, 78, 89, 90},
				L6:  []float64{56, 67, 78, 89},
				FYP: 68,
			},
		},
		{
			name:    "json",
			file:    "rec.json",
			content: `{"l5":[40,41,42,43,44,45],"l6":[50,51,52,53],"fyp":70,"l7":{"credits15":[60]}}`,
			want: marks.Record{
				L5:  []float64{40, 41, 42, 43, 44, 45},
				L6:  []float64{50, 51, 52, 53},
				FYP: 70,
			},
		},
		{
			name:    "unsupported extension",
			file:    "rec.txt",
			content: "l5: []",
			wantErr: true,
		},
		{
			name:    "malformed json",
			file:    "rec.json",
			content: `{"l5": [`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			rec, err := marks.LoadRecord(path)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want.L5, rec.L5)
			assert.Equal(t, tc.want.L6, rec.L6)
			assert.Equal(t, tc.want.FYP, rec.FYP)
		})
	}
}

func TestLoadRecordMissingFile(t *testing.T) {
	_, err := marks.LoadRecord(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCohortSaveLoad(t *testing.T) {
	dir := t.TempDir()
	cohort := &marks.Cohort{
		Name: "CS 2026",
		Students: []marks.StudentRecord{
			{StudentID: "s1", Name: "Ada", Marks: marks.Record{L5: []float64{70, 71, 72, 73, 74, 75}, L6: []float64{60, 61, 62, 63}, FYP: 80}},
			{StudentID: "s2", Marks: marks.Record{L5: []float64{40, 41, 42, 43, 44, 45}, L6: []float64{50, 51, 52, 53}, FYP: 55}},
		},
	}

	for _, name := range []string{"cohort.yaml", "cohort.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			require.NoError(t, marks.SaveCohort(path, cohort))

			got, err := marks.LoadCohort(path)
			require.NoError(t, err)
			assert.Equal(t, "CS 2026", got.Name)
			require.Len(t, got.Students, 2)
			assert.Equal(t, "s1", got.Students[0].StudentID)
			assert.Equal(t, cohort.Students[1].Marks.L6, got.Students[1].Marks.L6)
		})
	}
}

func TestLoadCohortDefaultsNameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final-year.yaml")
	require.NoError(t, os.WriteFile(path, []byte("students:\n  - student_id: a\n    marks: {fyp: 50}\n"), 0o644))

	got, err := marks.LoadCohort(path)
	require.NoError(t, err)
	assert.Equal(t, "final-year", got.Name)
}

func TestParseMarkList(t *testing.T) {
	got, err := marks.ParseMarkList(" 45, 56.5,,67 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{45, 56.5, 67}, got)

	got, err = marks.ParseMarkList("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = marks.ParseMarkList("45,abc")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := marks.Record{L5: []float64{0, 100, 50, 50, 50}, L6: []float64{1, 2, 3}, FYP: 100}
	require.NoError(t, marks.Validate(ok))

	bad := marks.Record{L5: []float64{50, 101, 50, 50, 50}, L6: []float64{50, 50, -1}, FYP: math.NaN()}
	err := marks.Validate(bad)
	require.Error(t, err)

	var fe marks.FieldErrors
	require.True(t, errors.As(err, &fe))
	require.Len(t, fe, 3)
	assert.Equal(t, marks.FieldError{Field: "l5", Index: 1, Value: 101}, fe[0])
	assert.Equal(t, marks.FieldError{Field: "l6", Index: 2, Value: -1}, fe[1])
	assert.Equal(t, "fyp", fe[2].Field)
	assert.Equal(t, -1, fe[2].Index)
	assert.Contains(t, err.Error(), "l5[1]=101")
}

func TestValidateIgnoresAuxiliaryFields(t *testing.T) {
	gip := 250.0
	rec := marks.Record{
		L5:  []float64{50, 50, 50, 50, 50},
		L6:  []float64{50, 50, 50},
		FYP: 50,
		L7:  marks.Level7{Credits30: []float64{-5}},
		GIP: &gip,
	}
	assert.NoError(t, marks.Validate(rec))
}

func TestCohortValidationRejectsDuplicateStudentIDs(t *testing.T) {
	c := marks.Cohort{
		Name: "BSc Computing",
		Students: []marks.StudentRecord{
			{StudentID: "s1"},
			{StudentID: "s2"},
		},
	}
	require.NoError(t, marks.Validator().Struct(&c))

	c.Students = append(c.Students, marks.StudentRecord{StudentID: "s1"})
	err := marks.Validator().Struct(&c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unique")
}

func TestCloneIsIndependent(t *testing.T) {
	gip := 10.0
	orig := marks.Record{L5: []float64{1, 2}, L6: []float64{3}, FYP: 4, GIP: &gip}
	c := orig.Clone()
	c.L5[0] = 99
	*c.GIP = 20

	assert.Equal(t, 1.0, orig.L5[0])
	assert.Equal(t, 10.0, *orig.GIP)
}
