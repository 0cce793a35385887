// Package meta defines the abstract type-descriptor model the schema
// derivation engine operates on. The engine never touches a concrete
// reflection API; it only sees Descriptor and Provider, so any metadata
// source (live Go types, protobuf descriptors, a hand-written table) can
// act as the host class graph.
package meta

// Kind classifies a class declaration.
type Kind int

const (
	KindConcrete Kind = iota
	KindAbstract
	KindInterface
)

// Descriptor describes one host class. Implementations must be comparable
// by canonical name: two descriptors with equal Name() denote the same class.
type Descriptor interface {
	// Name is the canonical class name, unique within the universe
	// (e.g. "app.model.Job").
	Name() string

	// SimpleName is the unqualified class name used for scalar matching
	// and schema naming.
	SimpleName() string

	Kind() Kind

	// IsAnonymous reports whether the class has no usable name.
	IsAnonymous() bool

	// IsRestricted reports whether the class is marked as excluded from
	// any external surface.
	IsRestricted() bool

	// IsNonNull reports whether values of this type carry a non-null marker.
	IsNonNull() bool

	// HasIdentity reports whether the class exposes an identity accessor.
	HasIdentity() bool

	// SuperTypes returns the direct supertypes: the superclass, if any,
	// followed by implemented interfaces.
	SuperTypes() []Descriptor
}

// Shape classifies how a property holds its value(s).
type Shape int

const (
	ShapePlain Shape = iota
	ShapeArray
	ShapeCollection
)

// Property is one exported property of a class.
type Property struct {
	Name string

	// Type is the declared type of the property. For arrays and
	// collections this is the container type; Element carries the
	// element type.
	Type    Descriptor
	Element Descriptor
	Shape   Shape

	// Doc is the property documentation, possibly multi-line.
	Doc string

	// Get reads the property value from a live object. May be nil when
	// the metadata source has no value access (e.g. a descriptor-set
	// file with no runtime behind it).
	Get func(obj any) any
}

// Provider is the exportability oracle: it answers which classes may be
// reflected into the schema and what they look like.
type Provider interface {
	// IsExportable reports whether the class has an exported metadata
	// model at all.
	IsExportable(d Descriptor) bool

	// PropertiesOf returns the class's own exported properties in
	// declaration order, excluding inherited ones.
	PropertiesOf(d Descriptor) []Property

	// SuperclassChain returns the superclass chain of d, most-derived
	// first, excluding d itself and excluding interfaces.
	SuperclassChain(d Descriptor) []Descriptor

	// Subclasses returns the discoverable concrete subclasses of d.
	Subclasses(d Descriptor) []Descriptor

	// Lookup resolves a canonical class name.
	Lookup(name string) (Descriptor, bool)
}

// Assignable reports whether sub is super or a transitive subtype of super.
func Assignable(super, sub Descriptor) bool {
	if super == nil || sub == nil {
		return false
	}
	if super.Name() == sub.Name() {
		return true
	}
	for _, st := range sub.SuperTypes() {
		if Assignable(super, st) {
			return true
		}
	}
	return false
}
