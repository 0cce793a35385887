package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	Schema          = ast.Schema
	SchemaDocument  = ast.SchemaDocument
	Source          = ast.Source
	Definition      = ast.Definition
	FieldDefinition = ast.FieldDefinition
	Type            = ast.Type
)

type DefinitionKind = ast.DefinitionKind

const (
	Object    DefinitionKind = ast.Object
	Interface DefinitionKind = ast.Interface
	Scalar    DefinitionKind = ast.Scalar
)
