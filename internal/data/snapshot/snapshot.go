package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/util"
)

var ErrNoSnapshot = errors.New("no snapshot stored")

// Snapshot is the last project that validated without errors
type Snapshot struct {
	Source   string         `json:"source"`
	SavedAt  time.Time      `json:"saved_at"`
	Warnings int            `json:"warnings"`
	Project  *model.Project `json:"project"`
}

// Store keeps the last-known-good project on disk
type Store struct {
	mu   sync.RWMutex
	path string
}

// NewStore creates a store under dir (e.g. ~/.cydconf)
func NewStore(dir string) (*Store, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Store{path: filepath.Join(dir, "last-good.json")}, nil
}

// Path returns the snapshot file location
func (s *Store) Path() string {
	return s.path
}

// Save records p as last-known-good. Reports with errors are refused.
func (s *Store) Save(source string, p *model.Project, report *model.Report) error {
	if report != nil && report.HasErrors() {
		return fmt.Errorf("refusing to snapshot %s: %d validation errors", source, report.Count(model.SeverityError))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Source:  source,
		SavedAt: time.Now(),
		Project: p,
	}
	if report != nil {
		snap.Warnings = report.Count(model.SeverityWarning)
	}

	data, err := sonic.ConfigStd.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := util.WriteFileAtomic(s.path, data, 0600); err != nil {
		return err
	}

	util.LogDebug("saved snapshot", util.F("path", s.path), util.F("source", source))
	return nil
}

// Load returns the stored snapshot
func (s *Store) Load() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}

// Clear removes the stored snapshot
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
