// Package gometa derives class metadata from live Go types. Registered
// struct types become concrete classes, embedded structs form the
// superclass chain, and registered Go interfaces become schema interfaces
// whose implementors are discoverable as subclasses.
//
// Field naming follows the exported-property convention: the Go field name
// with its first rune lowered. A `graphql:"name"` tag overrides the name
// and `graphql:"-"` hides the field; a `doc:"..."` tag attaches field
// documentation.
package gometa

import (
	"reflect"
	"sort"
	"time"
	"unicode"

	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
)

// Universe is a registry of Go types acting as a meta.Provider.
type Universe struct {
	byType map[reflect.Type]*classDesc
	byName map[string]*classDesc
	order  []reflect.Type
}

func New() *Universe {
	return &Universe{
		byType: make(map[reflect.Type]*classDesc),
		byName: make(map[string]*classDesc),
	}
}

// Register adds a concrete struct type (given as a value or pointer) and
// returns its descriptor. Registered types are exportable; struct types
// merely referenced by properties are not.
func (u *Universe) Register(v any) meta.Descriptor {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	d := u.descriptorFor(t)
	d.registered = true
	return d
}

// RegisterInterface adds a Go interface type, given as a nil pointer to the
// interface (e.g. RegisterInterface((*Item)(nil))).
func (u *Universe) RegisterInterface(p any) meta.Descriptor {
	t := reflect.TypeOf(p).Elem()
	d := u.descriptorFor(t)
	d.registered = true
	return d
}

// Restrict marks a type as excluded from any external surface.
func (u *Universe) Restrict(v any) {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	u.descriptorFor(t).restricted = true
}

// Descriptor resolves the dynamic class of a live object.
func (u *Universe) Descriptor(v any) meta.Descriptor {
	if v == nil {
		return nil
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return u.descriptorFor(t)
}

func (u *Universe) descriptorFor(t reflect.Type) *classDesc {
	if d, ok := u.byType[t]; ok {
		return d
	}
	d := &classDesc{universe: u, rt: t}
	u.byType[t] = d
	u.byName[d.Name()] = d
	u.order = append(u.order, t)
	return d
}

// ---- meta.Provider ----

func (u *Universe) IsExportable(d meta.Descriptor) bool {
	c, ok := d.(*classDesc)
	return ok && c.registered && c.rt.Kind() == reflect.Struct
}

func (u *Universe) PropertiesOf(d meta.Descriptor) []meta.Property {
	c, ok := d.(*classDesc)
	if !ok || c.rt.Kind() != reflect.Struct {
		return nil
	}
	var props []meta.Property
	for i := 0; i < c.rt.NumField(); i++ {
		f := c.rt.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		name := propertyName(f)
		if name == "" {
			continue
		}
		props = append(props, u.property(name, f))
	}
	return props
}

func (u *Universe) property(name string, f reflect.StructField) meta.Property {
	p := meta.Property{
		Name: name,
		Doc:  f.Tag.Get("doc"),
		Get:  fieldGetter(f.Index),
	}
	ft := f.Type
	for ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	switch ft.Kind() {
	case reflect.Array:
		p.Shape = meta.ShapeArray
		p.Type = u.typeDescriptor(ft)
		p.Element = u.typeDescriptor(ft.Elem())
	case reflect.Slice:
		p.Shape = meta.ShapeCollection
		p.Type = u.typeDescriptor(ft)
		p.Element = u.typeDescriptor(ft.Elem())
	default:
		p.Shape = meta.ShapePlain
		p.Type = u.typeDescriptor(ft)
	}
	return p
}

// typeDescriptor maps a Go type to a descriptor: primitives to terminal
// scalar-named descriptors, structs and interfaces to class descriptors.
func (u *Universe) typeDescriptor(t reflect.Type) meta.Descriptor {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return terminal("Date")
	}
	switch t.Kind() {
	case reflect.Bool:
		return terminal("boolean")
	case reflect.String:
		return terminal("string")
	case reflect.Int, reflect.Int32, reflect.Uint, reflect.Uint16, reflect.Uint32:
		return terminal("int")
	case reflect.Int64, reflect.Uint64:
		return terminal("long")
	case reflect.Int16:
		return terminal("short")
	case reflect.Int8, reflect.Uint8:
		return terminal("byte")
	case reflect.Float32:
		return terminal("float")
	case reflect.Float64:
		return terminal("double")
	case reflect.Struct, reflect.Interface:
		return u.descriptorFor(t)
	default:
		// Maps, channels and funcs have no schema shape; they surface
		// as unexportable references and degrade to String.
		return terminal(t.String())
	}
}

func (u *Universe) SuperclassChain(d meta.Descriptor) []meta.Descriptor {
	c, ok := d.(*classDesc)
	if !ok {
		return nil
	}
	var chain []meta.Descriptor
	u.appendEmbedded(c.rt, &chain)
	return chain
}

func (u *Universe) appendEmbedded(t reflect.Type, chain *[]meta.Descriptor) {
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() != reflect.Struct {
			continue
		}
		*chain = append(*chain, u.descriptorFor(ft))
		u.appendEmbedded(ft, chain)
	}
}

func (u *Universe) Subclasses(d meta.Descriptor) []meta.Descriptor {
	var subs []meta.Descriptor
	for _, t := range u.order {
		c := u.byType[t]
		if !c.registered || c.rt.Kind() != reflect.Struct || c == d {
			continue
		}
		if meta.Assignable(d, c) {
			subs = append(subs, c)
		}
	}
	return subs
}

func (u *Universe) Lookup(name string) (meta.Descriptor, bool) {
	d, ok := u.byName[name]
	return d, ok
}

var _ meta.Provider = (*Universe)(nil)

// ---- descriptors ----

type classDesc struct {
	universe   *Universe
	rt         reflect.Type
	registered bool
	restricted bool
}

func (c *classDesc) Name() string {
	if c.rt.PkgPath() == "" {
		return c.rt.String()
	}
	return c.rt.PkgPath() + "." + c.rt.Name()
}

func (c *classDesc) SimpleName() string {
	if n := c.rt.Name(); n != "" {
		return n
	}
	return c.rt.String()
}

func (c *classDesc) Kind() meta.Kind {
	if c.rt.Kind() == reflect.Interface {
		return meta.KindInterface
	}
	return meta.KindConcrete
}

func (c *classDesc) IsAnonymous() bool  { return c.rt.Name() == "" }
func (c *classDesc) IsRestricted() bool { return c.restricted }
func (c *classDesc) IsNonNull() bool    { return false }

func (c *classDesc) HasIdentity() bool {
	if c.rt.Kind() != reflect.Struct {
		return false
	}
	if f, ok := c.rt.FieldByName("ID"); ok && len(f.Index) == 1 {
		return true
	}
	_, ok := reflect.PointerTo(c.rt).MethodByName("ID")
	return ok
}

func (c *classDesc) SuperTypes() []meta.Descriptor {
	var sts []meta.Descriptor
	if c.rt.Kind() == reflect.Struct {
		for i := 0; i < c.rt.NumField(); i++ {
			f := c.rt.Field(i)
			if !f.Anonymous {
				continue
			}
			ft := f.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct || ft.Kind() == reflect.Interface {
				sts = append(sts, c.universe.descriptorFor(ft))
			}
		}
	}
	// Registered interfaces the type satisfies, in registration order.
	for _, t := range c.universe.order {
		other := c.universe.byType[t]
		if !other.registered || t.Kind() != reflect.Interface || t == c.rt {
			continue
		}
		if c.rt.Implements(t) || reflect.PointerTo(c.rt).Implements(t) {
			sts = append(sts, other)
		}
	}
	return sts
}

// term is a terminal descriptor known by name only, used for primitives.
type term string

func terminal(name string) meta.Descriptor { return term(name) }

func (t term) Name() string                  { return string(t) }
func (t term) SimpleName() string            { return string(t) }
func (t term) Kind() meta.Kind               { return meta.KindConcrete }
func (t term) IsAnonymous() bool             { return false }
func (t term) IsRestricted() bool            { return false }
func (t term) IsNonNull() bool               { return false }
func (t term) HasIdentity() bool             { return false }
func (t term) SuperTypes() []meta.Descriptor { return nil }

var timeType = reflect.TypeOf(time.Time{})

func propertyName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("graphql"); ok {
		if tag == "-" {
			return ""
		}
		if tag != "" {
			return tag
		}
	}
	r := []rune(f.Name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func fieldGetter(index []int) func(obj any) any {
	return func(obj any) any {
		v := reflect.ValueOf(obj)
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return nil
		}
		fv, err := v.FieldByIndexErr(index)
		if err != nil || !fv.IsValid() {
			return nil
		}
		return fv.Interface()
	}
}

// Sorted returns every registered descriptor ordered by canonical name,
// useful for deterministic enumeration in tooling.
func (u *Universe) Sorted() []meta.Descriptor {
	ds := make([]meta.Descriptor, 0, len(u.order))
	for _, t := range u.order {
		if u.byType[t].registered {
			ds = append(ds, u.byType[t])
		}
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].Name() < ds[j].Name() })
	return ds
}
