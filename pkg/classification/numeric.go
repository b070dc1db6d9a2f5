package classification

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sortedDesc returns a descending copy of xs.
func sortedDesc(xs []float64) []float64 {
	out := make([]float64, len(xs), len(xs)+1)
	copy(out, xs)
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// Truncate renders x with exactly two fraction digits, discarding the rest
// of the shortest decimal representation without rounding.
// Truncate(64.999) == "64.99".
func Truncate(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	if frac == "" {
		frac = "00"
	}
	for len(frac) < 2 {
		frac += "0"
	}
	return whole + "." + frac[:2]
}

// truncated returns Truncate(x) together with its numeric value.
func truncated(x float64) (string, float64) {
	s := Truncate(x)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s, math.NaN()
	}
	return s, v
}

// FormatFixed renders x with the given number of fraction digits, rounding
// the exact binary value half away from zero.
func FormatFixed(x float64, digits int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) || digits < 0 {
		return strconv.FormatFloat(x, 'f', digits, 64)
	}

	neg := x < 0
	if neg {
		x = -x
	}

	// 1100 fraction digits hold any float64 exactly.
	exact := new(big.Float).SetFloat64(x).Text('f', 1100)
	whole, frac, _ := strings.Cut(exact, ".")

	n, _ := new(big.Int).SetString(whole+frac[:digits], 10)
	if frac[digits] >= '5' {
		n.Add(n, big.NewInt(1))
	}

	s := n.String()
	if digits > 0 {
		for len(s) <= digits {
			s = "0" + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return f
}
