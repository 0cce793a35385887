// Package language wraps the external GraphQL schema parser. The derived
// schema text is handed to it as a black box; everything the engine knows
// about GraphQL syntax lives behind this boundary.
package language

import (
	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// LoadSchema parses and validates a schema document, returning the
// executable schema form.
func LoadSchema(name, sdl string) (*Schema, error) {
	return gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
}

// ParseSchema parses a schema document without validating it.
func ParseSchema(name, sdl string) (*SchemaDocument, error) {
	return parser.ParseSchema(&ast.Source{Name: name, Input: sdl})
}
