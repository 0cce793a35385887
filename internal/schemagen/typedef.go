package schemagen

import "github.com/fqueiruga/graphql-server-plugin/internal/meta"

// TypeDef is the two-phase record for one synthesized declaration. The
// field list is frozen once the class is processed; Interfaces is filled by
// the interface resolution pass after the whole graph is explored, and the
// record is never mutated after that.
type TypeDef struct {
	Class meta.Descriptor

	// Name is the schema-visible type name.
	Name string

	// Interface marks the declaration as `interface` rather than `type`.
	// Non-exportable concrete classes are forced to interface status so
	// they can still participate in inheritance resolution.
	Interface bool

	// DisplayName is the optional human-readable description emitted
	// above the declaration.
	DisplayName string

	Fields []FieldDef

	// Interfaces holds the schema names this declaration implements,
	// in discovery order of the visited set.
	Interfaces []string
}

// FieldDef is one emitted field line.
type FieldDef struct {
	Name string

	// Type is the rendered type expression, e.g. "String" or "[Job]".
	Type string

	// Doc is the field documentation. Inline docs render as a single
	// quoted line; everything else renders as a triple-quoted block
	// reindented by two spaces per line.
	Doc       string
	DocInline bool

	NonNull bool
}

func (t *TypeDef) hasField(name string) bool {
	for _, f := range t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
