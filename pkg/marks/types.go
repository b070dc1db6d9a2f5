// Package marks defines the input data model for degree classification:
// a student's module marks at Level 5 and Level 6 plus the final-year project.
// These types are the shared vocabulary across the CLI, the engine and the service.
package marks

// Record holds the marks for one student. Marks are percentage scores.
// The engine never mutates a Record.
type Record struct {
	// L5 holds one mark per 20-credit Level 5 module.
	L5 []float64 `json:"l5" yaml:"l5" validate:"dive,gte=0,lte=100"`
	// L6 holds the Level 6 module marks, final-year project excluded.
	L6 []float64 `json:"l6" yaml:"l6" validate:"dive,gte=0,lte=100"`
	// FYP is the final-year project mark, worth 40 credits.
	FYP float64 `json:"fyp" yaml:"fyp" validate:"gte=0,lte=100"`

	// Accepted in the input shape but not consumed by classification.
	L7  Level7   `json:"l7,omitempty" yaml:"l7,omitempty" validate:"-"`
	GIP *float64 `json:"gip,omitempty" yaml:"gip,omitempty" validate:"-"`
}

// Level7 groups integrated-masters marks by module size.
// Classification does not use them.
type Level7 struct {
	Credits15 []float64 `json:"credits15,omitempty" yaml:"credits15,omitempty"`
	Credits30 []float64 `json:"credits30,omitempty" yaml:"credits30,omitempty"`
}

// StudentRecord ties a Record to the student it belongs to.
type StudentRecord struct {
	StudentID string `json:"student_id" yaml:"student_id" validate:"required"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Marks     Record `json:"marks" yaml:"marks" validate:"-"`
}

// Cohort is a named batch of students classified together.
type Cohort struct {
	Name     string          `json:"name" yaml:"name"`
	Students []StudentRecord `json:"students" yaml:"students" validate:"min=1,unique=StudentID,dive"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := Record{
		L5:  append([]float64(nil), r.L5...),
		L6:  append([]float64(nil), r.L6...),
		FYP: r.FYP,
		L7: Level7{
			Credits15: append([]float64(nil), r.L7.Credits15...),
			Credits30: append([]float64(nil), r.L7.Credits30...),
		},
	}
	if r.GIP != nil {
		g := *r.GIP
		out.GIP = &g
	}
	return out
}
