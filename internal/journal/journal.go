// Package journal holds the authoritative in-memory entry collection and keeps
// it in step with its Store on every change.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jiashen-meow/feelingdiary/internal/model"
	"github.com/jiashen-meow/feelingdiary/internal/storage"
)

var (
	// ErrNotFound is returned when no entry has the requested identifier.
	ErrNotFound = errors.New("entry not found")
	// ErrDuplicateID is returned when adding an entry whose identifier is taken.
	ErrDuplicateID = errors.New("entry id already exists")
	// ErrAmbiguous is returned when an id prefix matches several entries.
	ErrAmbiguous = errors.New("ambiguous entry id")
)

// Store is the persistence the Manager writes through to.
type Store interface {
	Load() ([]model.Entry, error)
	Save(entries []model.Entry) error
}

// Manager owns the ordered entry collection, newest first by insertion.
// Each mutation builds the next collection, saves it in full and only then
// makes it current, so a failed save leaves memory unchanged.
type Manager struct {
	mu      sync.Mutex
	store   Store
	entries []model.Entry
	loadErr error

	log     *zap.Logger
	now     func() time.Time
	samples bool

	watchMu  sync.Mutex
	watchers map[int]func(Event)
	nextID   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the Manager's logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock overrides the clock used for sample dates.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithSamples controls whether an empty journal is seeded with sample entries.
func WithSamples(enabled bool) Option {
	return func(m *Manager) { m.samples = enabled }
}

// Open loads the collection from store. When it is empty the sample dataset is
// generated and saved. A read error other than corruption aborts before
// anything is written; a corrupt document (already backed up by the store) is
// reported through LoadErr and treated as empty.
func Open(store Store, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:    store,
		log:      zap.NewNop(),
		now:      time.Now,
		samples:  true,
		watchers: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.Reload(); err != nil && !errors.Is(err, storage.ErrCorrupt) {
		return nil, err
	}

	if len(m.entries) == 0 && m.samples {
		entries := SampleEntries(m.now())
		if err := m.store.Save(entries); err != nil {
			return nil, fmt.Errorf("seeding sample entries: %w", err)
		}
		m.entries = entries
		m.log.Info("seeded sample entries", zap.Int("count", len(entries)))
	}
	return m, nil
}

// Reload replaces the in-memory collection with the stored one.
func (m *Manager) Reload() error {
	m.mu.Lock()
	entries, err := m.store.Load()
	if err != nil && !errors.Is(err, storage.ErrCorrupt) {
		m.mu.Unlock()
		return err
	}
	if err != nil {
		m.log.Warn("stored entries were corrupt, starting empty", zap.Error(err))
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	m.entries = entries
	m.loadErr = err
	snap := m.snapshot()
	m.mu.Unlock()

	m.notify(Event{Op: OpLoad, Entries: snap})
	return err
}

// LoadErr returns the corruption error seen by the last load, if any.
func (m *Manager) LoadErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// Entries returns a copy of the collection in order.
func (m *Manager) Entries() []model.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Len returns the number of entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Get returns the entry with the given id.
func (m *Manager) Get(id uuid.UUID) (model.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		return m.entries[i].Clone(), true
	}
	return model.Entry{}, false
}

// Lookup resolves a full id or a unique, case-insensitive id prefix.
func (m *Manager) Lookup(ref string) (model.Entry, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return model.Entry{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if id, err := uuid.Parse(ref); err == nil {
		if e, ok := m.Get(id); ok {
			return e, nil
		}
		return model.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var found []model.Entry
	for _, e := range m.entries {
		if strings.HasPrefix(e.ID.String(), ref) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return model.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return found[0].Clone(), nil
	default:
		return model.Entry{}, fmt.Errorf("%w: %q matches %d entries", ErrAmbiguous, ref, len(found))
	}
}

// Add inserts e at the front of the collection and saves.
func (m *Manager) Add(e model.Entry) error {
	m.mu.Lock()
	if m.indexOf(e.ID) >= 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}
	next := make([]model.Entry, 0, len(m.entries)+1)
	next = append(next, e.Clone())
	next = append(next, m.entries...)
	if err := m.commit(next); err != nil {
		m.mu.Unlock()
		return err
	}
	snap := m.snapshot()
	m.mu.Unlock()

	m.log.Debug("entry added", zap.Stringer("id", e.ID))
	m.notify(Event{Op: OpAdd, Entry: e.Clone(), Entries: snap})
	return nil
}

// Update replaces the entry with e's id in place and saves. Unknown ids
// return ErrNotFound without writing.
func (m *Manager) Update(e model.Entry) error {
	m.mu.Lock()
	i := m.indexOf(e.ID)
	if i < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}
	next := append([]model.Entry(nil), m.entries...)
	next[i] = e.Clone()
	if err := m.commit(next); err != nil {
		m.mu.Unlock()
		return err
	}
	snap := m.snapshot()
	m.mu.Unlock()

	m.log.Debug("entry updated", zap.Stringer("id", e.ID))
	m.notify(Event{Op: OpUpdate, Entry: e.Clone(), Entries: snap})
	return nil
}

// Delete removes every entry with the given id and saves, even when nothing
// matched.
func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	next := make([]model.Entry, 0, len(m.entries))
	var removed model.Entry
	for _, e := range m.entries {
		if e.ID == id {
			removed = e
			continue
		}
		next = append(next, e)
	}
	if err := m.commit(next); err != nil {
		m.mu.Unlock()
		return err
	}
	snap := m.snapshot()
	m.mu.Unlock()

	m.log.Debug("entry deleted", zap.Stringer("id", id))
	if removed.ID == uuid.Nil {
		removed.ID = id
	}
	m.notify(Event{Op: OpDelete, Entry: removed, Entries: snap})
	return nil
}

// commit saves next and makes it current. Callers hold m.mu.
func (m *Manager) commit(next []model.Entry) error {
	if err := m.store.Save(next); err != nil {
		return fmt.Errorf("saving entries: %w", err)
	}
	m.entries = next
	return nil
}

func (m *Manager) indexOf(id uuid.UUID) int {
	for i, e := range m.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) snapshot() []model.Entry {
	out := make([]model.Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Clone()
	}
	return out
}
