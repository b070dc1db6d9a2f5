package marks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRecord reads a single mark record from a .json, .yaml or .yml file.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading marks: %w", err)
	}

	var rec Record
	if err := decode(path, data, &rec); err != nil {
		return nil, fmt.Errorf("parsing marks: %w", err)
	}

	return &rec, nil
}

// LoadCohort reads a cohort file. The format is chosen by extension.
func LoadCohort(path string) (*Cohort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cohort: %w", err)
	}

	var cohort Cohort
	if err := decode(path, data, &cohort); err != nil {
		return nil, fmt.Errorf("parsing cohort: %w", err)
	}

	if cohort.Name == "" {
		cohort.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &cohort, nil
}

// SaveCohort writes a cohort to disk, as YAML unless the path ends in .json.
func SaveCohort(path string, cohort *Cohort) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for cohort: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(cohort, "", "  ")
	} else {
		data, err = yaml.Marshal(cohort)
	}
	if err != nil {
		return fmt.Errorf("marshaling cohort: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing cohort: %w", err)
	}

	return nil
}

func decode(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(data, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ParseMarkList parses a comma-separated list of marks such as "45,56,67.5".
// Blank entries are skipped.
func ParseMarkList(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid mark %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
