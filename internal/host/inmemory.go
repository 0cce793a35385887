package host

import (
	"iter"

	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
)

// Entry is one stored object with its hierarchical name or user identifier.
type Entry struct {
	ID     string
	Object any
}

// Memory is an in-memory Host for tests and embedders without a live
// application behind them. Item and user order is insertion order.
type Memory struct {
	Items   []Entry
	Users   []Entry
	Actions []RootAction

	// Displays maps canonical class names to display names.
	Displays map[string]string

	// Classify resolves the descriptor of a live object. Required for
	// AllOfType and ClassOf; a nil Classify makes every object classless.
	Classify func(obj any) meta.Descriptor
}

var _ Host = (*Memory)(nil)

func (m *Memory) AllOfType(p Principal, d meta.Descriptor) iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, e := range m.Items {
			if !meta.Assignable(d, m.ClassOf(e.Object)) {
				continue
			}
			if !yield(e.Object) {
				return
			}
		}
	}
}

func (m *Memory) ItemByFullName(id string) (any, bool) { return find(m.Items, id) }
func (m *Memory) UserByID(id string) (any, bool)       { return find(m.Users, id) }

func (m *Memory) AllUsers() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, e := range m.Users {
			if !yield(e.Object) {
				return
			}
		}
	}
}

func (m *Memory) DisplayNameOf(d meta.Descriptor) (string, bool) {
	name, ok := m.Displays[d.Name()]
	return name, ok
}

func (m *Memory) RootActions() []RootAction { return m.Actions }

func (m *Memory) ClassOf(obj any) meta.Descriptor {
	if m.Classify == nil {
		return nil
	}
	return m.Classify(obj)
}

func find(entries []Entry, id string) (any, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e.Object, true
		}
	}
	return nil, false
}
