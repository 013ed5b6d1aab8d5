package journal

import (
	"sort"

	"github.com/jiashen-meow/feelingdiary/internal/model"
)

// Op identifies the kind of change an Event reports.
type Op int

const (
	OpLoad Op = iota
	OpAdd
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event is delivered to watchers after a change has been saved.
// Entries is a snapshot of the whole collection after the change.
type Event struct {
	Op      Op
	Entry   model.Entry
	Entries []model.Entry
}

// Watch registers fn to be called after every committed change, on the
// goroutine that made the change. The returned func unregisters fn.
func (m *Manager) Watch(fn func(Event)) (cancel func()) {
	m.watchMu.Lock()
	id := m.nextID
	m.nextID++
	m.watchers[id] = fn
	m.watchMu.Unlock()

	return func() {
		m.watchMu.Lock()
		delete(m.watchers, id)
		m.watchMu.Unlock()
	}
}

func (m *Manager) notify(ev Event) {
	m.watchMu.Lock()
	ids := make([]int, 0, len(m.watchers))
	for id := range m.watchers {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, m.watchers[id])
	}
	m.watchMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
