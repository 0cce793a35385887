package schemagen

import "strings"

// SchemaName derives the schema-visible type name for a class: its simple
// name with every character that is not legal in a schema identifier
// collapsed to an underscore. Nested and generic name separators ('$', '<',
// '.') all fall into this rule.
func SchemaName(simpleName string) string {
	if simpleName == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(simpleName))
	for i, r := range simpleName {
		legal := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if !legal {
			b.WriteByte('_')
			continue
		}
		if i == 0 && r >= '0' && r <= '9' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var actionNameReplacer = strings.NewReplacer("-", "_", "/", "_")

// ActionFieldName normalizes a root action's URL segment into a schema-legal
// field name. An empty URL name yields no field.
func ActionFieldName(urlName string) string {
	if urlName == "" {
		return ""
	}
	return actionNameReplacer.Replace(urlName)
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// reindent prefixes every line of doc with two spaces.
func reindent(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
