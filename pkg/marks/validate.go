package marks

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator. Field names in errors follow the
// json tags ("l5", "fyp", "student_id").
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// FieldError is a single out-of-range mark.
type FieldError struct {
	Field string  // "l5", "l6" or "fyp"
	Index int     // position within the list, -1 for fyp
	Value float64 // offending mark
}

func (e FieldError) String() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s=%g", e.Field, e.Value)
	}
	return fmt.Sprintf("%s[%d]=%g", e.Field, e.Index, e.Value)
}

// FieldErrors is returned by Validate when one or more marks fall outside 0-100.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.String()
	}
	return "marks out of range 0-100: " + strings.Join(parts, ", ")
}

// Validate checks that every consumed mark lies within 0-100. NaN fails.
func Validate(r Record) error {
	err := Validator().Struct(r)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := make(FieldErrors, 0, len(ve))
	for _, fe := range ve {
		field, index := splitIndexedField(fe.Field())
		v, _ := fe.Value().(float64)
		out = append(out, FieldError{Field: field, Index: index, Value: v})
	}
	return out
}

// splitIndexedField turns "l5[3]" into ("l5", 3) and "fyp" into ("fyp", -1).
func splitIndexedField(name string) (string, int) {
	base, rest, ok := strings.Cut(name, "[")
	if !ok {
		return name, -1
	}
	idx, err := strconv.Atoi(strings.TrimSuffix(rest, "]"))
	if err != nil {
		return base, -1
	}
	return base, idx
}
