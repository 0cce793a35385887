package schemagen

import (
	"strings"

	"github.com/fqueiruga/graphql-server-plugin/internal/scalars"
)

// render assembles the full schema text: scalar declarations, all type and
// interface declarations in discovery order, the schema block, and the root
// QueryType with the two paginated listings plus one field per root action.
func render(res *Result) string {
	var b strings.Builder

	b.WriteString(scalars.Declarations())
	b.WriteString("\n")

	decls := make([]string, 0, len(res.Types))
	for _, td := range res.Types {
		decls = append(decls, renderType(td))
	}
	b.WriteString(strings.Join(decls, "\n\n"))

	b.WriteString("\n")
	b.WriteString("schema {\n")
	b.WriteString("  query: QueryType\n")
	b.WriteString("}\n")

	b.WriteString("type QueryType {\n")
	b.WriteString("  allItems(offset: Int = 0, limit: Int = 100, type: String, id: ID): [" + res.ItemType + "]\n")
	b.WriteString("  allUsers(offset: Int = 0, limit: Int = 100, type: String, id: ID): [" + res.UserType + "]\n")
	for _, a := range res.Actions {
		b.WriteString("  " + a.Field + ": " + a.Type + "\n")
	}
	b.WriteString("}\n")

	return b.String()
}

func renderType(td *TypeDef) string {
	var b strings.Builder

	if td.DisplayName != "" {
		b.WriteString("\"" + escapeQuotes(td.DisplayName) + "\"\n")
	}
	if td.Interface {
		b.WriteString("interface ")
	} else {
		b.WriteString("type ")
	}
	b.WriteString(td.Name)
	if len(td.Interfaces) > 0 {
		b.WriteString(" implements " + strings.Join(td.Interfaces, " & "))
	}
	b.WriteString(" {\n")

	for _, f := range td.Fields {
		renderField(&b, f)
	}

	b.WriteString("}\n")
	return b.String()
}

func renderField(b *strings.Builder, f FieldDef) {
	if f.Doc != "" {
		if f.DocInline {
			b.WriteString("  \"" + escapeQuotes(f.Doc) + "\"\n")
		} else {
			b.WriteString("  \"\"\"\n")
			b.WriteString(reindent(f.Doc))
			b.WriteString("\n  \"\"\"\n")
		}
	}
	b.WriteString("  ")
	b.WriteString(f.Name)
	b.WriteString(": ")
	b.WriteString(f.Type)
	if f.NonNull {
		b.WriteString("!")
	}
	b.WriteString("\n")
}
