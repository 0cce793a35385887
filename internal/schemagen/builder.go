// Package schemagen synthesizes a GraphQL schema from a host class graph.
// A Builder explores every class reachable from the configured roots,
// emitting one declaration per class, then resolves interface
// implementation relationships once the whole graph is known.
package schemagen

import (
	"errors"

	"github.com/fqueiruga/graphql-server-plugin/internal/host"
	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
	"github.com/fqueiruga/graphql-server-plugin/internal/scalars"
)

// Config names the root classes the exploration starts from.
type Config struct {
	// ItemRoot is the default class of the paginated item listing.
	ItemRoot meta.Descriptor

	// UserRoot is the default class of the paginated user listing.
	UserRoot meta.Descriptor

	// ExtraRoots are additional top-level classes to explore.
	ExtraRoots []meta.Descriptor
}

// ActionField is a root-action singleton surfaced as a root query field.
type ActionField struct {
	Field  string
	Type   string
	Action host.RootAction
}

// Result is the immutable outcome of one schema build.
type Result struct {
	// SDL is the complete schema text, ready for the schema parser.
	SDL string

	// Types holds the finalized declarations in discovery order.
	Types []*TypeDef

	// Bindings maps "TypeName#fieldName" to the metadata property backing
	// that field, for late-bound field resolution.
	Bindings map[string]meta.Property

	// Handles maps schema type names back to class descriptors, so
	// fetch-time type overrides never need dynamic class loading.
	Handles map[string]meta.Descriptor

	// Actions are the filtered root actions with their field names.
	Actions []ActionField

	ItemType string
	UserType string
}

// Builder owns all mutable state of a single schema build: the work queue,
// the visited set, and the property-binding map. A Builder is single-use and
// single-threaded; its state is discarded when Run returns.
type Builder struct {
	provider meta.Provider
	source   host.Source

	queue    *classQueue
	visited  map[string]*TypeDef
	order    []string
	bindings map[string]meta.Property
	handles  map[string]meta.Descriptor
	done     bool
}

// NewBuilder prepares a one-shot schema build.
func NewBuilder(provider meta.Provider, source host.Source) *Builder {
	return &Builder{
		provider: provider,
		source:   source,
		queue:    newClassQueue(),
		visited:  make(map[string]*TypeDef),
		bindings: make(map[string]meta.Property),
		handles:  make(map[string]meta.Descriptor),
	}
}

// Run drains the work queue seeded from cfg, finalizes interface clauses,
// and renders the schema text. It fails outright when no host instance is
// available: a partial schema is worse than none.
func (b *Builder) Run(cfg Config) (*Result, error) {
	if b.done {
		return nil, errors.New("schema builder already consumed")
	}
	b.done = true

	h, ok := b.source.Instance()
	if !ok {
		return nil, host.ErrUnavailable
	}

	actions := filterRootActions(b.provider, h.RootActions())
	for _, a := range actions {
		b.queue.push(a.Class)
	}
	// Roots go through name resolution so an interface or abstract root
	// pulls its implementors into the exploration.
	itemType := b.resolveName(cfg.ItemRoot)
	userType := b.resolveName(cfg.UserRoot)
	for _, d := range cfg.ExtraRoots {
		b.resolveName(d)
	}

	for !b.queue.empty() {
		d, _ := b.queue.pop()
		b.process(d, h)
	}

	b.resolveInterfaces()

	res := &Result{
		Types:    make([]*TypeDef, 0, len(b.order)),
		Bindings: b.bindings,
		Handles:  b.handles,
		ItemType: itemType,
		UserType: userType,
	}
	for _, key := range b.order {
		res.Types = append(res.Types, b.visited[key])
	}
	for _, a := range actions {
		field := ActionFieldName(a.URLName)
		if field == "" {
			continue
		}
		res.Actions = append(res.Actions, ActionField{
			Field:  field,
			Type:   SchemaName(a.Class.SimpleName()),
			Action: a,
		})
	}
	res.SDL = render(res)

	// The build is one-shot: drop the working state so a stale Builder
	// cannot leak into another build.
	b.queue = nil
	b.visited = nil
	b.order = nil
	b.bindings = nil
	b.handles = nil

	return res, nil
}

// resolveName decides the schema-visible name for a referenced class and
// schedules it for synthesis. Scalar-named classes are terminal. Interfaces
// and abstract classes pull their discoverable concrete subclasses into the
// queue so the union of implementors gets explored. A non-exportable
// concrete class degrades to a plain String field rather than aborting the
// build.
func (b *Builder) resolveName(d meta.Descriptor) string {
	if d == nil {
		return "String"
	}
	if s, ok := scalars.Lookup(d.SimpleName()); ok {
		return s
	}
	if isInterfaceOrAbstract(d) {
		for _, sub := range b.provider.Subclasses(d) {
			b.queue.push(sub)
		}
	} else if !b.provider.IsExportable(d) {
		return "String"
	}
	b.queue.push(d)
	return SchemaName(d.SimpleName())
}

// process synthesizes the type definition for one dequeued class.
func (b *Builder) process(d meta.Descriptor, h host.Host) {
	key := d.Name()
	if _, ok := b.visited[key]; ok {
		return
	}
	if d.IsRestricted() || d.IsAnonymous() {
		return
	}
	if _, ok := scalars.Lookup(d.SimpleName()); ok {
		// Built-in terminal; never materialized.
		return
	}

	exportable := b.provider.IsExportable(d)
	td := &TypeDef{
		Class: d,
		Name:  SchemaName(d.SimpleName()),
		// A concrete class without an exported model still needs a
		// placeholder declaration for inheritance resolution.
		Interface: isInterfaceOrAbstract(d) || !exportable,
	}
	if dn, ok := h.DisplayNameOf(d); ok {
		td.DisplayName = dn
	}

	td.Fields = append(td.Fields, FieldDef{
		Name: "_class", Type: "String", Doc: "Class Name", DocInline: true,
	})
	if d.HasIdentity() {
		td.Fields = append(td.Fields, FieldDef{
			Name: "id", Type: "ID", Doc: "UniqueID", DocInline: true,
		})
	}

	b.visited[key] = td
	b.order = append(b.order, key)
	if _, ok := b.handles[td.Name]; !ok {
		b.handles[td.Name] = d
	}

	if !exportable {
		return
	}

	// Own properties first, then the superclass chain most-derived first.
	// The first declaration of a field name wins; overridden inherited
	// properties are never rebound.
	containers := append([]meta.Descriptor{d}, b.provider.SuperclassChain(d)...)
	for _, c := range containers {
		for _, p := range b.provider.PropertiesOf(c) {
			if p.Name == "id" {
				// Identity is handled by the standard field above.
				continue
			}
			if td.hasField(p.Name) {
				continue
			}

			var typeExpr string
			switch p.Shape {
			case meta.ShapeArray, meta.ShapeCollection:
				typeExpr = "[" + b.resolveName(p.Element) + "]"
			default:
				typeExpr = b.resolveName(p.Type)
			}

			td.Fields = append(td.Fields, FieldDef{
				Name:    p.Name,
				Type:    typeExpr,
				Doc:     p.Doc,
				NonNull: p.Type != nil && p.Type.IsNonNull(),
			})
			b.bindings[td.Name+"#"+p.Name] = p
		}
	}
}

// resolveInterfaces runs after the queue is fully drained: an interface
// discovered late must still qualify earlier-built types. For every
// declaration it collects, in discovery order, the interface-classified
// classes of the visited set that are true supertypes.
func (b *Builder) resolveInterfaces() {
	for _, key := range b.order {
		td := b.visited[key]
		for _, other := range b.order {
			if other == key {
				continue
			}
			otd := b.visited[other]
			if !isInterfaceOrAbstract(otd.Class) {
				continue
			}
			if meta.Assignable(otd.Class, td.Class) {
				td.Interfaces = append(td.Interfaces, otd.Name)
			}
		}
	}
}

func filterRootActions(p meta.Provider, actions []host.RootAction) []host.RootAction {
	var kept []host.RootAction
	for _, a := range actions {
		if a.Class == nil || !p.IsExportable(a.Class) {
			continue
		}
		if a.DisplayName == "" {
			continue
		}
		if a.Class.IsRestricted() {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func isInterfaceOrAbstract(d meta.Descriptor) bool {
	return d.Kind() == meta.KindInterface || d.Kind() == meta.KindAbstract
}
