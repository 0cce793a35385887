// Package host declares the external collaborator contracts of the schema
// engine: the live object store, the access-control predicate, and the
// root-action surface. The engine consumes these as-is; it never owns or
// synchronizes host state.
package host

import (
	"context"
	"errors"
	"iter"

	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
)

// ErrUnavailable reports that no host instance is currently available.
var ErrUnavailable = errors.New("host instance unavailable")

// Principal identifies the caller a fetch runs on behalf of.
type Principal struct {
	Name string
}

// Anonymous is the principal used when none is attached to the context.
var Anonymous = Principal{Name: "anonymous"}

type principalKey struct{}

// WithPrincipal attaches p to ctx for the duration of a query execution.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the principal from ctx, defaulting to Anonymous.
func PrincipalFrom(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey{}).(Principal); ok {
		return p
	}
	return Anonymous
}

// RootAction is a singleton, addressable top-level object surfaced by the
// host. An empty DisplayName means the action declares none.
type RootAction struct {
	URLName     string
	DisplayName string
	Object      any
	Class       meta.Descriptor
}

// Host is the live object store and descriptor surface of the running
// application. Enumerations are live and order-preserving; they may observe
// concurrent mutation of the store, which is accepted rather than corrected.
type Host interface {
	// AllOfType enumerates every stored object assignable to d that the
	// store itself considers visible to p.
	AllOfType(p Principal, d meta.Descriptor) iter.Seq[any]

	// ItemByFullName resolves a single item by its full hierarchical name.
	ItemByFullName(id string) (any, bool)

	// UserByID resolves a single user by exact identifier. No fuzzy
	// matching, no on-demand creation.
	UserByID(id string) (any, bool)

	// AllUsers enumerates every known user.
	AllUsers() iter.Seq[any]

	// DisplayNameOf returns the human display name registered for a class.
	DisplayNameOf(d meta.Descriptor) (string, bool)

	// RootActions enumerates the registered root-action singletons.
	RootActions() []RootAction

	// ClassOf returns the descriptor of a live object's dynamic class.
	ClassOf(obj any) meta.Descriptor
}

// Source hands out the current host instance. A build or fetch that finds
// no instance must fail rather than proceed on stale state.
type Source interface {
	Instance() (Host, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (Host, bool)

func (f SourceFunc) Instance() (Host, bool) { return f() }

// Static wraps a fixed host instance as a Source. A nil host reports absence.
func Static(h Host) Source {
	return SourceFunc(func() (Host, bool) { return h, h != nil })
}

// Access is the capability predicate applied to every fetched object.
type Access interface {
	Allowed(p Principal, obj any) bool
}

// AccessFunc adapts a function to Access.
type AccessFunc func(p Principal, obj any) bool

func (f AccessFunc) Allowed(p Principal, obj any) bool { return f(p, obj) }

// AllowAll grants access to every object.
var AllowAll Access = AccessFunc(func(Principal, any) bool { return true })
