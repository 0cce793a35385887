package meta_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
)

func modelTable() *meta.Table {
	return meta.NewTable(
		meta.ClassSpec{
			Name: "app.model.Item", Kind: meta.KindInterface, Exportable: true,
		},
		meta.ClassSpec{
			Name: "app.model.AbstractItem", Kind: meta.KindAbstract, Exportable: true,
			SuperTypes: []string{"app.model.Item"},
		},
		meta.ClassSpec{
			Name: "app.model.Job", Kind: meta.KindConcrete, Exportable: true,
			SuperTypes: []string{"app.model.AbstractItem"},
		},
		meta.ClassSpec{
			Name: "app.model.Folder", Kind: meta.KindConcrete, Exportable: true,
			SuperTypes: []string{"app.model.AbstractItem"},
		},
		meta.ClassSpec{
			Name: "app.model.User", Kind: meta.KindConcrete, Exportable: true,
		},
	)
}

func TestAssignable(t *testing.T) {
	tbl := modelTable()
	item := tbl.Class("app.model.Item")
	abstract := tbl.Class("app.model.AbstractItem")
	job := tbl.Class("app.model.Job")
	user := tbl.Class("app.model.User")

	assert.True(t, meta.Assignable(item, item))
	assert.True(t, meta.Assignable(item, job))
	assert.True(t, meta.Assignable(abstract, job))
	assert.False(t, meta.Assignable(job, item))
	assert.False(t, meta.Assignable(item, user))
	assert.False(t, meta.Assignable(nil, job))
	assert.False(t, meta.Assignable(item, nil))
}

func TestTableSuperclassChain(t *testing.T) {
	tbl := modelTable()
	job := tbl.Class("app.model.Job")

	var names []string
	for _, d := range tbl.SuperclassChain(job) {
		names = append(names, d.Name())
	}
	// Interfaces never appear in the chain.
	if diff := cmp.Diff([]string{"app.model.AbstractItem"}, names); diff != "" {
		t.Errorf("superclass chain mismatch (-want +got):\n%s", diff)
	}
}

func TestTableSubclasses(t *testing.T) {
	tbl := modelTable()
	item := tbl.Class("app.model.Item")

	var names []string
	for _, d := range tbl.Subclasses(item) {
		names = append(names, d.Name())
	}
	if diff := cmp.Diff([]string{"app.model.Job", "app.model.Folder"}, names); diff != "" {
		t.Errorf("subclasses mismatch (-want +got):\n%s", diff)
	}
}

func TestTableImplicitTerminal(t *testing.T) {
	tbl := modelTable()

	d, ok := tbl.Lookup("ext.Unknown")
	require.False(t, ok)
	require.NotNil(t, d)
	assert.Equal(t, "ext.Unknown", d.Name())
	assert.Equal(t, "Unknown", d.SimpleName())
	assert.False(t, tbl.IsExportable(d))
}

func TestTableSimpleNameDefault(t *testing.T) {
	tbl := meta.NewTable(meta.ClassSpec{Name: "a.b.Thing", Exportable: true})
	assert.Equal(t, "Thing", tbl.Class("a.b.Thing").SimpleName())

	tbl = meta.NewTable(meta.ClassSpec{Name: "Bare"})
	assert.Equal(t, "Bare", tbl.Class("Bare").SimpleName())
}
