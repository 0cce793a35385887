package schemagen

import (
	"sort"

	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
)

// classQueue is an ordered, deduplicating set of classes awaiting type
// synthesis. Ordering is by canonical class name so that traversal, and
// therefore the generated schema, is deterministic across runs.
type classQueue struct {
	names  []string
	byName map[string]meta.Descriptor
}

func newClassQueue() *classQueue {
	return &classQueue{byName: make(map[string]meta.Descriptor)}
}

func (q *classQueue) push(d meta.Descriptor) {
	if d == nil {
		return
	}
	name := d.Name()
	if _, ok := q.byName[name]; ok {
		return
	}
	i := sort.SearchStrings(q.names, name)
	q.names = append(q.names, "")
	copy(q.names[i+1:], q.names[i:])
	q.names[i] = name
	q.byName[name] = d
}

func (q *classQueue) pop() (meta.Descriptor, bool) {
	if len(q.names) == 0 {
		return nil, false
	}
	name := q.names[0]
	q.names = q.names[1:]
	d := q.byName[name]
	delete(q.byName, name)
	return d, true
}

func (q *classQueue) empty() bool { return len(q.names) == 0 }
