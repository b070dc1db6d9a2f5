package classification_test

import (
	"errors"
	"reflect"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/degreecalc/degreecalc/pkg/classification"
	"github.com/degreecalc/degreecalc/pkg/marks"
)

func referenceRecord() marks.Record {
	return marks.Record{
		L5:  []float64{45, 56, 67, 78, 89, 90},
		L6:  []float64{56, 67, 78, 89},
		FYP: 68,
	}
}

func uniformRecord(mark float64) marks.Record {
	return marks.Record{
		L5:  []float64{mark, mark, mark, mark, mark, mark},
		L6:  []float64{mark, mark, mark, mark},
		FYP: mark,
	}
}

func ruleByKey(t *testing.T, res *classification.Result, key string) classification.RuleResult {
	t.Helper()
	for _, rr := range res.Rules {
		if rr.Key == key {
			return rr
		}
	}
	t.Fatalf("rule %s not in result", key)
	return classification.RuleResult{}
}

func TestEngineClassifyReferenceRecord(t *testing.T) {
	engine := classification.NewEngine()

	res, err := engine.Classify(referenceRecord())
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if len(res.Rules) != 3 {
		t.Fatalf("expected 3 rule results, got %d", len(res.Rules))
	}

	// Cross-check the reported final mark against each rule evaluated on
	// the same prepared marks.
	p, err := classification.Prepare(referenceRecord())
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	best := ""
	bestValue := -1.0
	for _, rule := range classification.DefaultRules() {
		rr := rule.Evaluate(p)
		v, err := strconv.ParseFloat(rr.Mark, 64)
		if err != nil {
			t.Fatalf("rule %s mark %q is not numeric: %v", rr.Key, rr.Mark, err)
		}
		if v > bestValue {
			best, bestValue = rr.Mark, v
		}
	}
	if res.FinalMark != best {
		t.Errorf("final mark %s is not the best rule mark %s", res.FinalMark, best)
	}

	for key, want := range map[string]string{
		"combined_weighted_mean": "74.80",
		"level6_mean":            "74.00",
		"majority_threshold":     "68.00",
	} {
		if got := ruleByKey(t, res, key).Mark; got != want {
			t.Errorf("rule %s = %s, want %s", key, got, want)
		}
	}

	if res.FinalMark != "74.80" {
		t.Errorf("expected final mark 74.80, got %s", res.FinalMark)
	}
	if res.SelectedRule != "combined_weighted_mean" {
		t.Errorf("expected combined_weighted_mean selected, got %s", res.SelectedRule)
	}
	if !ruleByKey(t, res, "combined_weighted_mean").Selected || ruleByKey(t, res, "level6_mean").Selected {
		t.Error("expected only combined_weighted_mean to be marked selected")
	}
	if res.Classification != classification.BandFirst {
		t.Errorf("expected First, got %s", res.Classification)
	}
	if res.GPA != "3.91" {
		t.Errorf("expected GPA 3.91, got %s", res.GPA)
	}
}

func TestEngineSelectsMostFavourableRule(t *testing.T) {
	tests := []struct {
		name     string
		rec      marks.Record
		wantRule string
		wantMark string
		wantBand classification.Band
	}{
		{
			name:     "level 6 mean lifts a weak level 5",
			rec:      marks.Record{L5: []float64{40, 40, 40, 40, 40, 40}, L6: []float64{70, 70, 70, 70}, FYP: 70},
			wantRule: "level6_mean",
			wantMark: "70.00",
			wantBand: classification.BandFirst,
		},
		{
			name:     "majority of credits beats both means",
			rec:      marks.Record{L5: []float64{70, 70, 70, 70, 70, 0}, L6: []float64{70, 0, 0, 0}, FYP: 0},
			wantRule: "majority_threshold",
			wantMark: "70.00",
			wantBand: classification.BandFirst,
		},
		{
			name:     "uniform marks tie and keep the first rule",
			rec:      uniformRecord(55),
			wantRule: "combined_weighted_mean",
			wantMark: "55.00",
			wantBand: classification.BandLowerSecond,
		},
		{
			name:     "failing marks",
			rec:      uniformRecord(30),
			wantRule: "combined_weighted_mean",
			wantMark: "30.00",
			wantBand: classification.BandFailed,
		},
	}

	engine := classification.NewEngine()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.Classify(tc.rec)
			if err != nil {
				t.Fatalf("Classify() error: %v", err)
			}
			if res.SelectedRule != tc.wantRule {
				t.Errorf("selected rule = %s, want %s", res.SelectedRule, tc.wantRule)
			}
			if res.FinalMark != tc.wantMark {
				t.Errorf("final mark = %s, want %s", res.FinalMark, tc.wantMark)
			}
			if res.Classification != tc.wantBand {
				t.Errorf("classification = %s, want %s", res.Classification, tc.wantBand)
			}
		})
	}
}

func TestBandFromMarkBoundaries(t *testing.T) {
	tests := []struct {
		mark float64
		want classification.Band
	}{
		{0, classification.BandFailed},
		{39.99, classification.BandFailed},
		{40.00, classification.BandThird},
		{49.99, classification.BandThird},
		{50.00, classification.BandLowerSecond},
		{59.99, classification.BandLowerSecond},
		{60.00, classification.BandUpperSecond},
		{69.99, classification.BandUpperSecond},
		{70.00, classification.BandFirst},
		{100, classification.BandFirst},
	}

	for _, tt := range tests {
		if got := classification.BandFromMark(tt.mark); got != tt.want {
			t.Errorf("BandFromMark(%v) = %s, want %s", tt.mark, got, tt.want)
		}
	}
}

// A borderline mean just under 70 must not round into a first.
func TestEngineBorderlineStaysInLowerBand(t *testing.T) {
	rule := &classification.Level6MeanRule{}
	rr := rule.Evaluate(classification.PreparedMarks{L6: []float64{69.999, 69.999, 69.999, 69.999, 69.999}})
	if rr.Mark != "69.99" {
		t.Errorf("expected truncated mark 69.99, got %s", rr.Mark)
	}
	if band := classification.BandFromMark(rr.Value); band != classification.BandUpperSecond {
		t.Errorf("expected upper second, got %s", band)
	}
}

func TestEngineInsufficientCredits(t *testing.T) {
	engine := classification.NewEngine()
	_, err := engine.Classify(marks.Record{L5: []float64{60, 60, 60}, L6: []float64{60, 60, 60, 60}, FYP: 60})

	var ice *classification.InsufficientCreditsError
	if !errors.As(err, &ice) {
		t.Fatalf("expected InsufficientCreditsError, got %v", err)
	}
	if ice.Level != "L5" {
		t.Errorf("expected level L5, got %s", ice.Level)
	}
}

func TestEngineStrictRange(t *testing.T) {
	rec := referenceRecord()
	rec.L5[2] = 104

	// Default engine keeps the tolerant behaviour.
	if _, err := classification.NewEngine().Classify(rec); err != nil {
		t.Fatalf("default engine rejected out-of-range mark: %v", err)
	}

	strict := classification.NewEngine(classification.WithStrictRange())
	if !strict.Strict() {
		t.Error("expected Strict() to report true")
	}

	_, err := strict.Classify(rec)
	var imr *classification.InvalidMarkRangeError
	if !errors.As(err, &imr) {
		t.Fatalf("expected InvalidMarkRangeError, got %v", err)
	}
	if imr.Field != "l5" || imr.Index != 2 || imr.Mark != 104 {
		t.Errorf("got %s[%d]=%v, want l5[2]=104", imr.Field, imr.Index, imr.Mark)
	}

	var fe marks.FieldErrors
	if !errors.As(err, &fe) {
		t.Error("expected the validator's FieldErrors to be wrapped")
	}
}

func TestEngineNoRules(t *testing.T) {
	engine := classification.NewEngine(classification.WithRules())
	if _, err := engine.Classify(referenceRecord()); err == nil {
		t.Error("expected an error from an engine with no rules")
	}
}

func TestEngineCustomRules(t *testing.T) {
	engine := classification.NewEngine(classification.WithRules(&classification.MajorityRule{}))
	res, err := engine.Classify(referenceRecord())
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if len(res.Rules) != 1 {
		t.Fatalf("expected 1 rule result, got %d", len(res.Rules))
	}
	if res.FinalMark != "68.00" {
		t.Errorf("expected final mark 68.00, got %s", res.FinalMark)
	}
	if res.Classification != classification.BandUpperSecond {
		t.Errorf("expected upper second, got %s", res.Classification)
	}
}

func TestEngineSelectionSizesAreFixed(t *testing.T) {
	engine := classification.NewEngine()
	for extra := 0; extra < 4; extra++ {
		rec := marks.Record{
			L5:  make([]float64, 5+extra),
			L6:  make([]float64, 3+extra),
			FYP: 65,
		}
		for i := range rec.L5 {
			rec.L5[i] = float64(50 + i)
		}
		for i := range rec.L6 {
			rec.L6[i] = float64(60 + i)
		}

		res, err := engine.Classify(rec)
		if err != nil {
			t.Fatalf("Classify() with %d extra marks: %v", extra, err)
		}
		if len(res.Prepared.L5) != 5 || len(res.Prepared.L6) != 5 {
			t.Errorf("with %d extra marks got %d L5 and %d L6 counted, want 5 and 5",
				extra, len(res.Prepared.L5), len(res.Prepared.L6))
		}
	}
}

func TestEngineIdempotent(t *testing.T) {
	engine := classification.NewEngine()
	rec := referenceRecord()
	before := rec.Clone()

	first, err := engine.Classify(rec)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	second, err := engine.Classify(rec)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Classify() differs:\n%+v\n%+v", first, second)
	}
	if !slices.Equal(before.L5, rec.L5) || !slices.Equal(before.L6, rec.L6) {
		t.Errorf("input record changed: got %+v, want %+v", rec, before)
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	engine := classification.NewEngine()
	want, err := engine.Classify(referenceRecord())
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*classification.Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := engine.Classify(referenceRecord())
			if err == nil {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(want, got) {
			t.Errorf("goroutine %d got %+v, want %+v", i, got, want)
		}
	}
}
