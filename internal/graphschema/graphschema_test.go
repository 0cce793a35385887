package graphschema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fqueiruga/graphql-server-plugin/internal/eventbus"
	"github.com/fqueiruga/graphql-server-plugin/internal/events"
	"github.com/fqueiruga/graphql-server-plugin/internal/fetch"
	"github.com/fqueiruga/graphql-server-plugin/internal/graphschema"
	"github.com/fqueiruga/graphql-server-plugin/internal/host"
	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
	"github.com/fqueiruga/graphql-server-plugin/internal/schemagen"
)

type jobObj struct{ Name string }
type userObj struct{ Login string }

func appTable() *meta.Table {
	return meta.NewTable(
		meta.ClassSpec{Name: "app.Item", Kind: meta.KindInterface, Exportable: true},
		meta.ClassSpec{
			Name: "app.Job", Kind: meta.KindConcrete, Exportable: true,
			HasIdentity: true,
			SuperTypes:  []string{"app.Item"},
			Properties: []meta.PropertySpec{
				{Name: "name", Type: "lang.String", Doc: "Job name",
					Get: func(obj any) any { return obj.(jobObj).Name }},
			},
		},
		meta.ClassSpec{
			Name: "app.User", Kind: meta.KindConcrete, Exportable: true,
			HasIdentity: true,
			Properties: []meta.PropertySpec{
				{Name: "login", Type: "lang.String",
					Get: func(obj any) any { return obj.(userObj).Login }},
			},
		},
	)
}

func appHost(tbl *meta.Table) *host.Memory {
	return &host.Memory{
		Items: []host.Entry{
			{ID: "a/j1", Object: jobObj{Name: "j1"}},
			{ID: "a/j2", Object: jobObj{Name: "j2"}},
		},
		Users: []host.Entry{
			{ID: "alice", Object: userObj{Login: "alice"}},
		},
		Classify: func(obj any) meta.Descriptor {
			switch obj.(type) {
			case jobObj:
				return tbl.Class("app.Job")
			case userObj:
				return tbl.Class("app.User")
			}
			return nil
		},
	}
}

func buildApp(t *testing.T) *graphschema.Executable {
	t.Helper()
	tbl := appTable()
	ex, err := graphschema.Build(tbl, host.Static(appHost(tbl)), host.AllowAll, schemagen.Config{
		ItemRoot: tbl.Class("app.Item"),
		UserRoot: tbl.Class("app.User"),
	})
	require.NoError(t, err)
	return ex
}

func TestBuildValidatesDerivedSchema(t *testing.T) {
	ex := buildApp(t)

	require.NotNil(t, ex.Schema)
	assert.NotEmpty(t, ex.SDL)

	query := ex.Schema.Query
	require.NotNil(t, query)
	assert.Equal(t, graphschema.QueryTypeName, query.Name)

	job := ex.Schema.Types["Job"]
	require.NotNil(t, job)
	assert.Len(t, job.Interfaces, 1)
	assert.Equal(t, "Item", job.Interfaces[0])
}

func TestBuildBindsResolvers(t *testing.T) {
	ex := buildApp(t)

	for _, key := range []fetch.Key{
		{Type: graphschema.QueryTypeName, Field: "allItems"},
		{Type: graphschema.QueryTypeName, Field: "allUsers"},
		{Type: "Job", Field: "_class"},
		{Type: "Job", Field: "name"},
		{Type: "User", Field: "login"},
	} {
		assert.Contains(t, ex.Resolvers, key, "missing resolver for %v", key)
	}

	// The standard id field is synthesized, not property-backed.
	assert.NotContains(t, ex.Resolvers, fetch.Key{Type: "Job", Field: "id"})
}

func TestResolversRunAgainstHost(t *testing.T) {
	ex := buildApp(t)

	resolve := ex.Resolvers[fetch.Key{Type: graphschema.QueryTypeName, Field: "allItems"}]
	require.NotNil(t, resolve)

	got, err := resolve(context.Background(), nil, map[string]any{"limit": 1})
	require.NoError(t, err)
	objs := got.([]any)
	require.Len(t, objs, 1)

	nameResolve := ex.Resolvers[fetch.Key{Type: "Job", Field: "name"}]
	name, err := nameResolve(context.Background(), objs[0], nil)
	require.NoError(t, err)
	assert.Equal(t, "j1", name)

	classResolve := ex.Resolvers[fetch.Key{Type: "Job", Field: "_class"}]
	class, err := classResolve(context.Background(), objs[0], nil)
	require.NoError(t, err)
	assert.Equal(t, "Job", class)
}

func TestBuildWithoutHost(t *testing.T) {
	tbl := appTable()
	_, err := graphschema.Build(tbl, host.Static(nil), host.AllowAll, schemagen.Config{
		ItemRoot: tbl.Class("app.Item"),
		UserRoot: tbl.Class("app.User"),
	})
	require.ErrorIs(t, err, host.ErrUnavailable)
}

func TestBuildPublishesEvents(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var finishes []events.SchemaBuildFinish
	unsubscribe := eventbus.Subscribe(func(_ context.Context, e events.SchemaBuildFinish) {
		finishes = append(finishes, e)
	})
	defer unsubscribe()

	buildApp(t)

	require.Len(t, finishes, 1)
	assert.NoError(t, finishes[0].Err)
	assert.Greater(t, finishes[0].Types, 0)
}
