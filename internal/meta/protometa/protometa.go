// Package protometa treats protobuf message descriptors as a host class
// graph: every message becomes a concrete class whose fields are exported
// properties. It lets a serialized descriptor set stand in for a live
// object model, with dynamic messages as the live objects.
package protometa

import (
	"fmt"
	"sort"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
)

// Universe exposes the messages of a descriptor registry as a meta.Provider.
type Universe struct {
	byName map[string]*messageDesc
	order  []string
}

// New collects every message (including nested ones, excluding synthetic
// map entries) reachable from files.
func New(files *protoregistry.Files) *Universe {
	u := &Universe{byName: make(map[string]*messageDesc)}
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		u.collect(fd.Messages())
		return true
	})
	sort.Strings(u.order)
	return u
}

// FromDescriptorSet parses a serialized FileDescriptorSet and builds a
// Universe from it.
func FromDescriptorSet(data []byte) (*Universe, error) {
	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, fds); err != nil {
		return nil, fmt.Errorf("parse descriptor set: %w", err)
	}
	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return nil, fmt.Errorf("resolve descriptor set: %w", err)
	}
	return New(files), nil
}

func (u *Universe) collect(mds protoreflect.MessageDescriptors) {
	for i := 0; i < mds.Len(); i++ {
		md := mds.Get(i)
		if md.IsMapEntry() {
			continue
		}
		name := string(md.FullName())
		if _, ok := u.byName[name]; !ok {
			u.byName[name] = &messageDesc{md: md}
			u.order = append(u.order, name)
		}
		u.collect(md.Messages())
	}
}

// Message returns the descriptor for a full message name.
func (u *Universe) Message(fullName string) (meta.Descriptor, bool) {
	d, ok := u.byName[fullName]
	return d, ok
}

// Messages returns all known message descriptors ordered by full name.
func (u *Universe) Messages() []meta.Descriptor {
	ds := make([]meta.Descriptor, 0, len(u.order))
	for _, name := range u.order {
		ds = append(ds, u.byName[name])
	}
	return ds
}

// ---- meta.Provider ----

func (u *Universe) IsExportable(d meta.Descriptor) bool {
	_, ok := u.byName[d.Name()]
	return ok
}

func (u *Universe) PropertiesOf(d meta.Descriptor) []meta.Property {
	m, ok := u.byName[d.Name()]
	if !ok {
		return nil
	}
	fields := m.md.Fields()
	props := make([]meta.Property, 0, fields.Len())
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		if fd.IsMap() {
			continue
		}
		p := meta.Property{
			Name: fd.JSONName(),
			Type: u.fieldType(fd),
			Get:  fieldGetter(fd),
		}
		if fd.IsList() {
			p.Shape = meta.ShapeCollection
			p.Element = p.Type
		}
		props = append(props, p)
	}
	return props
}

func (u *Universe) fieldType(fd protoreflect.FieldDescriptor) meta.Descriptor {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		name := string(fd.Message().FullName())
		if d, ok := u.byName[name]; ok {
			return d
		}
		return term(name)
	case protoreflect.BoolKind:
		return term("boolean")
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return term("int")
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return term("long")
	case protoreflect.FloatKind:
		return term("float")
	case protoreflect.DoubleKind:
		return term("double")
	default:
		// Strings, bytes and enums all surface as text.
		return term("string")
	}
}

func (u *Universe) SuperclassChain(meta.Descriptor) []meta.Descriptor { return nil }
func (u *Universe) Subclasses(meta.Descriptor) []meta.Descriptor     { return nil }

func (u *Universe) Lookup(name string) (meta.Descriptor, bool) {
	d, ok := u.byName[name]
	return d, ok
}

var _ meta.Provider = (*Universe)(nil)

// ---- descriptors ----

type messageDesc struct {
	md protoreflect.MessageDescriptor
}

func (m *messageDesc) Name() string       { return string(m.md.FullName()) }
func (m *messageDesc) SimpleName() string { return string(m.md.Name()) }
func (m *messageDesc) Kind() meta.Kind    { return meta.KindConcrete }
func (m *messageDesc) IsAnonymous() bool  { return false }
func (m *messageDesc) IsRestricted() bool { return false }
func (m *messageDesc) IsNonNull() bool    { return false }

func (m *messageDesc) HasIdentity() bool {
	return m.md.Fields().ByName("id") != nil
}

func (m *messageDesc) SuperTypes() []meta.Descriptor { return nil }

type term string

func (t term) Name() string                  { return string(t) }
func (t term) SimpleName() string            { return string(t) }
func (t term) Kind() meta.Kind               { return meta.KindConcrete }
func (t term) IsAnonymous() bool             { return false }
func (t term) IsRestricted() bool            { return false }
func (t term) IsNonNull() bool               { return false }
func (t term) HasIdentity() bool             { return false }
func (t term) SuperTypes() []meta.Descriptor { return nil }

func fieldGetter(fd protoreflect.FieldDescriptor) func(obj any) any {
	return func(obj any) any {
		pm, ok := obj.(proto.Message)
		if !ok {
			return nil
		}
		m := pm.ProtoReflect()
		if m.Descriptor().FullName() != fd.ContainingMessage().FullName() {
			return nil
		}
		if !m.Has(fd) && fd.Kind() == protoreflect.MessageKind {
			return nil
		}
		return m.Get(fd).Interface()
	}
}
