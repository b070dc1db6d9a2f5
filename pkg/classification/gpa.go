package classification

import "math"

// InvalidGPA is returned by GradeToGPA when no zone contains the mark.
// Every mark in 0-100 lands in a zone once nines are rounded up; only
// out-of-range input reaches this value.
const InvalidGPA = -999.0

// GPAZone maps an inclusive range of whole marks to grade points.
type GPAZone struct {
	Low    int     `json:"low"`
	High   int     `json:"high"`
	Points float64 `json:"points"`
}

// Zones are scanned in order; the first match wins. The table leaves 29, 39
// and 49 uncovered, which the nines rule in GradeToGPA moves to the next zone.
var gpaZones = []GPAZone{
	{75, 100, 4.25},
	{71, 74, 4.0},
	{67, 70, 3.75},
	{64, 66, 3.5},
	{61, 63, 3.25},
	{57, 60, 3.0},
	{54, 56, 2.75},
	{50, 53, 2.5},
	{48, 48, 2.25},
	{43, 47, 2.0},
	{40, 42, 1.5},
	{38, 38, 1.0},
	{35, 37, 0.75},
	{30, 34, 0.5},
	{0, 28, 0.0},
}

// Zones returns a copy of the GPA zone table.
func Zones() []GPAZone {
	return append([]GPAZone(nil), gpaZones...)
}

// GradeToGPA converts a mark to grade points. The mark is rounded half up,
// then a final digit of 9 is bumped to the next ten (59 -> 60).
func GradeToGPA(mark float64) float64 {
	if math.IsNaN(mark) || math.IsInf(mark, 0) {
		return InvalidGPA
	}
	r := roundHalfUp(mark)
	if r > math.MaxInt32 || r < math.MinInt32 {
		return InvalidGPA
	}

	n := int(r)
	if n%10 == 9 {
		n++
	}

	for _, z := range gpaZones {
		if n >= z.Low && n <= z.High {
			return z.Points
		}
	}
	return InvalidGPA
}

func gradesToGPA(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = GradeToGPA(x)
	}
	return out
}

// GPA combines the prepared grade points 40:60 across Level 5 and Level 6
// and renders the result with two fraction digits.
func GPA(p PreparedMarks) string {
	w := Defaults()
	weighted := mean(p.L5GPA)*w.L5Weight + mean(p.L6GPA)*w.L6Weight
	return FormatFixed(weighted, 2)
}
