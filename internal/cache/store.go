// Package cache persists the data fetched from GitHub so that repeated runs
// can skip the network.
package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/naka-gawa/contrib-report/internal/domain"
	"go.uber.org/zap"
)

// DefaultFileName is the cache file created in the user's home directory.
const DefaultFileName = ".contrib_report_cache"

// ErrCorrupt is returned when the cache file exists but cannot be decoded.
var ErrCorrupt = errors.New("cache file is corrupt")

func init() {
	gob.Register(domain.PullRequestRef{})
}

// Store loads and saves a ReportBundle.
type Store interface {
	// Load returns the cached bundle. The boolean is false on a cache miss.
	Load(ctx context.Context) (domain.ReportBundle, bool, error)
	Store(ctx context.Context, bundle domain.ReportBundle) error
	Clear(ctx context.Context) error
}

// FileStore keeps a single bundle in a single file.
// The file holds whatever month was fetched last; its presence alone is a hit.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// DefaultPath returns the cache location in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(_ context.Context) (domain.ReportBundle, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("cache miss", zap.String("path", s.path))
		return domain.ReportBundle{}, false, nil
	}
	if err != nil {
		return domain.ReportBundle{}, false, fmt.Errorf("failed to read cache file %s: %w", s.path, err)
	}

	var bundle domain.ReportBundle
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&bundle); err != nil {
		return domain.ReportBundle{}, false, fmt.Errorf("%w: remove %s and run again: %v", ErrCorrupt, s.path, err)
	}
	s.logger.Debug("cache hit",
		zap.String("path", s.path),
		zap.Int("year", bundle.Year),
		zap.Int("month", bundle.Month),
		zap.Int("pull_requests", len(bundle.PullRequests)),
	)
	return bundle, true, nil
}

// Store replaces the cache file with bundle. The file is written next to the
// target and renamed into place, so an interrupted write leaves the old file intact.
func (s *FileStore) Store(_ context.Context, bundle domain.ReportBundle) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(toRefs(bundle)); err != nil {
		return fmt.Errorf("failed to encode report bundle: %w", err)
	}
	if err := writeAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", s.path, err)
	}
	s.logger.Debug("cache stored", zap.String("path", s.path), zap.Int("bytes", buf.Len()))
	return nil
}

// toRefs copies the pull requests into PullRequestRef values, the only
// PullRequest implementation registered with gob.
func toRefs(bundle domain.ReportBundle) domain.ReportBundle {
	if bundle.PullRequests == nil {
		return bundle
	}
	prs := make([]domain.PullRequest, len(bundle.PullRequests))
	for i, pr := range bundle.PullRequests {
		prs[i] = domain.NewPullRequestRef(pr)
	}
	bundle.PullRequests = prs
	return bundle
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Clear removes the cache file. A missing file is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache file %s: %w", s.path, err)
	}
	s.logger.Debug("cache cleared", zap.String("path", s.path))
	return nil
}
