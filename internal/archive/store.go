// Package archive stores rendered cohort reports as JSON blobs on local
// disk, S3 or GCS.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/degreecalc/degreecalc/pkg/config"
)

// ErrNotFound is returned by GetReport when no report exists for a run.
var ErrNotFound = errors.New("report not found")

// Store abstracts blob storage for cohort reports.
type Store interface {
	PutReport(ctx context.Context, runID string, data []byte) error
	GetReport(ctx context.Context, runID string) ([]byte, error)
}

// New builds the Store selected by cfg.Backend.
func New(ctx context.Context, cfg config.ArchiveConfig) (Store, error) {
	switch cfg.Backend {
	case "", "local":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("archive: local backend needs a directory")
		}
		return NewLocalStore(cfg.Dir), nil
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	case "gcs":
		return NewGCSStore(ctx, cfg.GCS.Bucket)
	default:
		return nil, fmt.Errorf("archive: unknown backend %q", cfg.Backend)
	}
}

func reportKey(runID string) string {
	return "reports/" + runID + ".json"
}

// LocalStore implements Store using the local filesystem.
type LocalStore struct {
	BaseDir string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{BaseDir: baseDir}
}

func (s *LocalStore) path(runID string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(reportKey(runID)))
}

// PutReport writes the report for runID, replacing any earlier one.
func (s *LocalStore) PutReport(ctx context.Context, runID string, data []byte) error {
	path := s.path(runID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GetReport reads the report for runID.
func (s *LocalStore) GetReport(ctx context.Context, runID string) ([]byte, error) {
	data, err := os.ReadFile(s.path(runID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return data, err
}
