// Package graphschema assembles the derived schema text, validates it
// through the external schema parser, and binds the data fetchers. The
// resulting Executable is immutable and safe for concurrent read-only use
// by any number of query executions.
package graphschema

import (
	"context"
	"fmt"
	"time"

	"github.com/fqueiruga/graphql-server-plugin/internal/eventbus"
	"github.com/fqueiruga/graphql-server-plugin/internal/events"
	"github.com/fqueiruga/graphql-server-plugin/internal/fetch"
	"github.com/fqueiruga/graphql-server-plugin/internal/host"
	"github.com/fqueiruga/graphql-server-plugin/internal/language"
	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
	"github.com/fqueiruga/graphql-server-plugin/internal/opid"
	"github.com/fqueiruga/graphql-server-plugin/internal/schemagen"
)

// QueryTypeName is the name of the root query type.
const QueryTypeName = "QueryType"

// Executable is a published schema: the schema text, its validated form,
// and the resolver bindings keyed by (typeName, fieldName).
type Executable struct {
	SDL       string
	Schema    *language.Schema
	Resolvers fetch.Map
}

// ValidationError reports that the derived schema text was rejected by the
// schema parser. It carries the offending text so the failure can be
// inspected without rebuilding.
type ValidationError struct {
	SDL string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate derived schema: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Build derives the schema from the host class graph and wires the data
// fetchers. It returns no schema at all when the host instance is missing
// or the derived text fails validation; callers must treat that as "schema
// unavailable", not as a partial result.
func Build(provider meta.Provider, source host.Source, access host.Access, cfg schemagen.Config) (*Executable, error) {
	ctx, _ := opid.NewContext(context.Background())
	start := time.Now()
	eventbus.Publish(ctx, events.SchemaBuildStart{})

	ex, types, err := build(provider, source, access, cfg)

	eventbus.Publish(ctx, events.SchemaBuildFinish{
		Types: types, Err: err, Duration: time.Since(start),
	})
	return ex, err
}

func build(provider meta.Provider, source host.Source, access host.Access, cfg schemagen.Config) (*Executable, int, error) {
	res, err := schemagen.NewBuilder(provider, source).Run(cfg)
	if err != nil {
		return nil, 0, err
	}

	sch, err := language.LoadSchema("derived", res.SDL)
	if err != nil {
		return nil, len(res.Types), &ValidationError{SDL: res.SDL, Err: err}
	}

	resolvers := fetch.Map{
		{Type: QueryTypeName, Field: "allItems"}: fetch.Listing(
			source, access, cfg.ItemRoot, cfg.UserRoot, res.Handles, "allItems"),
		{Type: QueryTypeName, Field: "allUsers"}: fetch.Listing(
			source, access, cfg.UserRoot, cfg.UserRoot, res.Handles, "allUsers"),
	}
	for _, a := range res.Actions {
		resolvers[fetch.Key{Type: QueryTypeName, Field: a.Field}] = fetch.Static(a.Action.Object)
	}
	for _, td := range res.Types {
		resolvers[fetch.Key{Type: td.Name, Field: "_class"}] = fetch.ClassName(source)
		for _, f := range td.Fields {
			if p, ok := res.Bindings[td.Name+"#"+f.Name]; ok {
				resolvers[fetch.Key{Type: td.Name, Field: f.Name}] = fetch.Property(p)
			}
		}
	}

	return &Executable{SDL: res.SDL, Schema: sch, Resolvers: resolvers}, len(res.Types), nil
}
