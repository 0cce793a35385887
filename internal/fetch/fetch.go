// Package fetch provides the runtime resolvers bound to the derived schema.
// Each resolver is stateless across calls and safe for concurrent use; the
// live object store it reads from belongs to, and is synchronized by, the
// host application.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/fqueiruga/graphql-server-plugin/internal/eventbus"
	"github.com/fqueiruga/graphql-server-plugin/internal/events"
	"github.com/fqueiruga/graphql-server-plugin/internal/host"
	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
	"github.com/fqueiruga/graphql-server-plugin/internal/opid"
	"github.com/fqueiruga/graphql-server-plugin/internal/schemagen"
)

// ErrClassNotFound reports an unknown type-name override. It fails the one
// field it occurred on, never the whole query.
var ErrClassNotFound = errors.New("class not found")

// Resolver produces the value of one schema field. source is the parent
// object (nil at the query root); args carries the coerced field arguments.
type Resolver func(ctx context.Context, source any, args map[string]any) (any, error)

// Key addresses a resolver by type and field name.
type Key struct {
	Type  string
	Field string
}

// Map is the resolver binding set handed to the query engine.
type Map map[Key]Resolver

// Listing returns the resolver for a paginated root listing field. root is
// the field's default class; userRoot marks which effective class routes to
// the user store instead of the item store. handles resolves type-name
// overrides to classes discovered during the schema build.
func Listing(src host.Source, access host.Access, root, userRoot meta.Descriptor, handles map[string]meta.Descriptor, field string) Resolver {
	l := &listing{src: src, access: access, root: root, userRoot: userRoot, handles: handles, field: field}
	return l.resolve
}

type listing struct {
	src      host.Source
	access   host.Access
	root     meta.Descriptor
	userRoot meta.Descriptor
	handles  map[string]meta.Descriptor
	field    string
}

func (l *listing) resolve(ctx context.Context, _ any, args map[string]any) (any, error) {
	offset := argInt(args, "offset", 0)
	limit := argInt(args, "limit", 100)
	typeName := argString(args, "type")
	id := argString(args, "id")

	ctx, _ = opid.NewContext(ctx)
	start := time.Now()
	eventbus.Publish(ctx, events.FetchStart{
		Field: l.field, Offset: offset, Limit: limit, TypeName: typeName, ID: id,
	})
	out, err := l.run(ctx, offset, limit, typeName, id)
	eventbus.Publish(ctx, events.FetchFinish{
		Field: l.field, Count: len(out), Err: err, Duration: time.Since(start),
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *listing) run(ctx context.Context, offset, limit int, typeName, id string) ([]any, error) {
	h, ok := l.src.Instance()
	if !ok {
		return nil, fmt.Errorf("fetch %s: %w", l.field, host.ErrUnavailable)
	}

	d := l.root
	if typeName != "" {
		d, ok = l.handles[typeName]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrClassNotFound, typeName)
		}
	}
	p := host.PrincipalFrom(ctx)

	if id != "" {
		var obj any
		var found bool
		if l.isUser(d) {
			obj, found = h.UserByID(id)
		} else {
			obj, found = h.ItemByFullName(id)
		}
		// A miss is an empty result, not a failure.
		if !found || !l.access.Allowed(p, obj) {
			return []any{}, nil
		}
		return []any{obj}, nil
	}

	var seq iter.Seq[any]
	if l.isUser(d) {
		seq = h.AllUsers()
	} else {
		seq = h.AllOfType(p, d)
	}

	// Access filtering happens after slicing: the candidate page is taken
	// from store order first, so a denied element shrinks the visible page
	// rather than pulling in a replacement.
	page := Slice(seq, offset, limit)
	out := make([]any, 0, len(page))
	for _, obj := range page {
		if l.access.Allowed(p, obj) {
			out = append(out, obj)
		}
	}
	return out, nil
}

func (l *listing) isUser(d meta.Descriptor) bool {
	return l.userRoot != nil && d.Name() == l.userRoot.Name()
}

// Slice extracts the sub-sequence [offset, offset+limit) of seq: skip
// offset, then take limit. Bounds are clamped only by the sequence itself;
// a caller may request an arbitrarily large limit.
func Slice(seq iter.Seq[any], offset, limit int) []any {
	if offset < 0 {
		offset = 0
	}
	out := []any{}
	if limit <= 0 {
		return out
	}
	i := 0
	for v := range seq {
		if i >= offset {
			out = append(out, v)
			if len(out) == limit {
				break
			}
		}
		i++
	}
	return out
}

// Static returns a resolver for a root-action field: a fixed, pre-discovered
// singleton instance resolved with no arguments.
func Static(v any) Resolver {
	return func(context.Context, any, map[string]any) (any, error) {
		return v, nil
	}
}

// Property returns the late-bound resolver for one metadata property.
func Property(p meta.Property) Resolver {
	return func(_ context.Context, source any, _ map[string]any) (any, error) {
		if p.Get == nil || source == nil {
			return nil, nil
		}
		return p.Get(source), nil
	}
}

// ClassName resolves the `_class` standard field to the schema name of the
// source object's dynamic class.
func ClassName(src host.Source) Resolver {
	return func(_ context.Context, source any, _ map[string]any) (any, error) {
		h, ok := src.Instance()
		if !ok {
			return nil, fmt.Errorf("fetch _class: %w", host.ErrUnavailable)
		}
		d := h.ClassOf(source)
		if d == nil {
			return nil, nil
		}
		return schemagen.SchemaName(d.SimpleName()), nil
	}
}

func argInt(args map[string]any, name string, def int) int {
	switch v := args[name].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

func argString(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}
