package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jiashen-meow/feelingdiary/internal/model"
)

// FileName is the fixed name of the entries document inside the data directory.
const FileName = "entries.json"

// ErrCorrupt is returned by Load when the document exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt entries document")

// BaseDir returns the default data directory (~/.feelingdiary).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".feelingdiary"), nil
}

// DefaultPath returns the entries document path inside dataDir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Store reads and writes the whole entry collection as one JSON document.
// Every save rewrites the full document.
type Store struct {
	path    string
	log     *zap.Logger
	metrics *Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report load and save outcomes.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records load and save outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New returns a Store backed by the document at path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("path", path))
	return s
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored collection. A missing document is the first-run
// state and yields an empty collection with no error. A document that cannot
// be decoded is moved aside to <path>.corrupt and reported with ErrCorrupt;
// the returned collection is empty in that case too.
func (s *Store) Load() ([]model.Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Debug("no saved entries found")
		s.metrics.load(resultMissing, 0)
		return []model.Entry{}, nil
	}
	if err != nil {
		s.log.Error("reading entries", zap.Error(err))
		s.metrics.load(resultError, 0)
		return []model.Entry{}, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	entries, err := Unmarshal(data)
	if err != nil {
		backupPath := corruptBackupPath(s.path)
		if renameErr := os.Rename(s.path, backupPath); renameErr != nil {
			s.log.Error("backing up corrupt entries", zap.Error(renameErr))
			backupPath = ""
		} else {
			s.log.Warn("corrupt entries backed up", zap.String("backup", backupPath), zap.Error(err))
		}
		s.metrics.load(resultCorrupt, 0)
		return []model.Entry{}, &CorruptError{Path: s.path, Backup: backupPath, Err: err}
	}

	s.log.Debug("loaded entries", zap.Int("count", len(entries)))
	s.metrics.load(resultOK, len(entries))
	return entries, nil
}

// Save validates entries and atomically replaces the document with them.
// Either the whole new document lands or the old one is left untouched.
func (s *Store) Save(entries []model.Entry) error {
	if err := model.ValidateAll(entries); err != nil {
		s.log.Error("refusing to save entries", zap.Error(err))
		s.metrics.save(resultInvalid, 0)
		return err
	}

	data, err := Marshal(entries)
	if err != nil {
		s.log.Error("encoding entries", zap.Error(err))
		s.metrics.save(resultError, 0)
		return fmt.Errorf("storage error: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		s.log.Error("saving entries", zap.Error(err))
		s.metrics.save(resultError, 0)
		return err
	}

	s.log.Debug("saved entries", zap.Int("count", len(entries)))
	s.metrics.save(resultOK, len(entries))
	return nil
}

// Clear removes the backing document. It is a no-op when the document is absent.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		s.log.Error("clearing entries", zap.Error(err))
		return fmt.Errorf("storage error removing %s: %w", s.path, err)
	}
	if err == nil {
		s.log.Info("all entries cleared")
	}
	return nil
}

// CorruptError describes a document that failed to decode.
type CorruptError struct {
	Path   string
	Backup string // empty when the backup rename failed
	Err    error
}

func (e *CorruptError) Error() string {
	if e.Backup == "" {
		return fmt.Sprintf("corrupt entries document %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("corrupt entries document %s (backed up to %s): %v", e.Path, e.Backup, e.Err)
}

func (e *CorruptError) Unwrap() []error {
	return []error{ErrCorrupt, e.Err}
}

// corruptBackupPath picks <path>.corrupt, or a timestamped variant when an
// earlier backup already holds that name.
func corruptBackupPath(path string) string {
	candidate := path + ".corrupt"
	if _, err := os.Lstat(candidate); err != nil {
		return candidate
	}
	stamp := time.Now().UTC().Format("20060102T150405")
	candidate = path + ".corrupt-" + stamp
	for i := 1; ; i++ {
		if _, err := os.Lstat(candidate); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s.corrupt-%s-%d", path, stamp, i)
	}
}

// writeFileAtomic writes data to a temp file in the target directory, syncs
// it and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+FileName+"-*.tmp")
	if err != nil {
		return fmt.Errorf("storage error creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
