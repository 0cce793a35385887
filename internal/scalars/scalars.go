// Package scalars holds the static mapping from host primitive and wrapper
// type names to GraphQL scalar names. The table is process-wide and never
// mutated after init.
package scalars

import (
	"sort"
	"strings"
)

// Extra scalar names declared beyond the GraphQL builtins.
const (
	Long              = "Long"
	Short             = "Short"
	Byte              = "Byte"
	Char              = "Char"
	BigDecimal        = "BigDecimal"
	GregorianCalendar = "GregorianCalendar"
)

// hostToScalar maps host type simple names to scalar names. Primitive names
// are lowercase, wrapper names capitalized, matching how the host metadata
// reports declared types. The table has two long-standing quirks that
// existing schemas depend on: "char" maps to Boolean and "double" to Long,
// while the wrapper forms map to Char and BigDecimal.
var hostToScalar = map[string]string{
	"ID": "ID",

	"boolean": "Boolean",
	"Boolean": "Boolean",

	"char":      "Boolean",
	"Character": Char,

	"byte": Byte,
	"Byte": Byte,

	"string": "String",
	"String": "String",

	"float": "Float",
	"Float": "Float",

	"integer": "Int",
	"int":     "Int",
	"Integer": "Int",

	"long": Long,
	"Long": Long,

	"double": Long,
	"Double": BigDecimal,

	"short": Short,
	"Short": Short,

	"GregorianCalendar": GregorianCalendar,
	"Calendar":          GregorianCalendar,
	"Date":              GregorianCalendar,
}

// builtin marks the scalar names every GraphQL schema parser predeclares;
// emitting declarations for them would clash with the parser's prelude.
var builtin = map[string]bool{
	"ID":      true,
	"Boolean": true,
	"String":  true,
	"Int":     true,
	"Float":   true,
}

// Lookup maps a host type simple name to its scalar name.
func Lookup(hostType string) (string, bool) {
	s, ok := hostToScalar[hostType]
	return s, ok
}

// Names returns the distinct scalar names, sorted.
func Names() []string {
	seen := make(map[string]struct{}, len(hostToScalar))
	names := make([]string, 0, len(hostToScalar))
	for _, s := range hostToScalar {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}

// Declarations renders one scalar declaration per distinct non-builtin
// scalar name.
func Declarations() string {
	var b strings.Builder
	for _, name := range Names() {
		if builtin[name] {
			continue
		}
		b.WriteString("scalar ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	return b.String()
}
