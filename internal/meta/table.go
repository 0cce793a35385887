package meta

import "strings"

// ClassSpec declares one class for a Table.
type ClassSpec struct {
	// Name is the canonical class name. SimpleName defaults to the last
	// dot-separated segment.
	Name       string
	SimpleName string

	Kind        Kind
	Anonymous   bool
	Restricted  bool
	NonNull     bool
	HasIdentity bool

	// Exportable marks the class as having an exported metadata model.
	Exportable bool

	// SuperTypes lists canonical names of direct supertypes: the
	// superclass first, then interfaces. Resolution happens lazily so
	// cyclic references between specs are fine.
	SuperTypes []string

	Properties []PropertySpec
}

// PropertySpec declares one exported property of a ClassSpec.
type PropertySpec struct {
	Name    string
	Type    string // canonical class name of the declared type
	Element string // element type for array/collection shapes
	Shape   Shape
	Doc     string
	Get     func(obj any) any
}

// Table is an in-memory Provider backed by registered ClassSpecs. Classes
// referenced by name but never registered resolve to implicit, non-exportable
// terminal descriptors, mirroring how a real metadata source reports classes
// it cannot model.
type Table struct {
	classes map[string]*tableClass
	order   []string
}

// NewTable builds a Table from specs. Later specs override earlier ones with
// the same canonical name.
func NewTable(specs ...ClassSpec) *Table {
	t := &Table{classes: make(map[string]*tableClass, len(specs))}
	for _, spec := range specs {
		s := spec
		if s.SimpleName == "" {
			if i := strings.LastIndexByte(s.Name, '.'); i >= 0 {
				s.SimpleName = s.Name[i+1:]
			} else {
				s.SimpleName = s.Name
			}
		}
		if _, ok := t.classes[s.Name]; !ok {
			t.order = append(t.order, s.Name)
		}
		t.classes[s.Name] = &tableClass{table: t, spec: s}
	}
	return t
}

// Class returns the descriptor registered (or implied) for name.
func (t *Table) Class(name string) Descriptor {
	d, _ := t.Lookup(name)
	return d
}

func (t *Table) Lookup(name string) (Descriptor, bool) {
	if c, ok := t.classes[name]; ok {
		return c, true
	}
	// Implicit terminal: known by name only, not exportable.
	return &tableClass{table: t, spec: ClassSpec{Name: name, SimpleName: simpleOf(name)}}, false
}

func (t *Table) IsExportable(d Descriptor) bool {
	c, ok := t.classes[d.Name()]
	return ok && c.spec.Exportable
}

func (t *Table) PropertiesOf(d Descriptor) []Property {
	c, ok := t.classes[d.Name()]
	if !ok {
		return nil
	}
	props := make([]Property, 0, len(c.spec.Properties))
	for _, ps := range c.spec.Properties {
		p := Property{
			Name:  ps.Name,
			Shape: ps.Shape,
			Doc:   ps.Doc,
			Get:   ps.Get,
		}
		if ps.Type != "" {
			p.Type = t.Class(ps.Type)
		}
		if ps.Element != "" {
			p.Element = t.Class(ps.Element)
		}
		props = append(props, p)
	}
	return props
}

func (t *Table) SuperclassChain(d Descriptor) []Descriptor {
	var chain []Descriptor
	cur := t.superclassOf(d)
	for cur != nil {
		chain = append(chain, cur)
		cur = t.superclassOf(cur)
	}
	return chain
}

func (t *Table) superclassOf(d Descriptor) Descriptor {
	for _, st := range d.SuperTypes() {
		if st.Kind() != KindInterface {
			return st
		}
	}
	return nil
}

func (t *Table) Subclasses(d Descriptor) []Descriptor {
	var subs []Descriptor
	for _, name := range t.order {
		c := t.classes[name]
		if c.spec.Kind != KindConcrete || name == d.Name() {
			continue
		}
		if Assignable(d, c) {
			subs = append(subs, c)
		}
	}
	return subs
}

var _ Provider = (*Table)(nil)

type tableClass struct {
	table *Table
	spec  ClassSpec
}

func (c *tableClass) Name() string       { return c.spec.Name }
func (c *tableClass) SimpleName() string { return c.spec.SimpleName }
func (c *tableClass) Kind() Kind         { return c.spec.Kind }
func (c *tableClass) IsAnonymous() bool  { return c.spec.Anonymous }
func (c *tableClass) IsRestricted() bool { return c.spec.Restricted }
func (c *tableClass) IsNonNull() bool    { return c.spec.NonNull }
func (c *tableClass) HasIdentity() bool  { return c.spec.HasIdentity }

func (c *tableClass) SuperTypes() []Descriptor {
	sts := make([]Descriptor, 0, len(c.spec.SuperTypes))
	for _, name := range c.spec.SuperTypes {
		sts = append(sts, c.table.Class(name))
	}
	return sts
}

func simpleOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
