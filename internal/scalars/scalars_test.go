package scalars_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fqueiruga/graphql-server-plugin/internal/scalars"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		hostType string
		want     string
	}{
		{"boolean", "Boolean"},
		{"Boolean", "Boolean"},
		// The long-standing quirks existing schemas depend on.
		{"char", "Boolean"},
		{"Character", "Char"},
		{"double", "Long"},
		{"Double", "BigDecimal"},
		{"int", "Int"},
		{"Integer", "Int"},
		{"integer", "Int"},
		{"long", "Long"},
		{"short", "Short"},
		{"byte", "Byte"},
		{"float", "Float"},
		{"string", "String"},
		{"Date", "GregorianCalendar"},
		{"Calendar", "GregorianCalendar"},
		{"GregorianCalendar", "GregorianCalendar"},
		{"ID", "ID"},
	}
	for _, c := range cases {
		t.Run(c.hostType, func(t *testing.T) {
			got, ok := scalars.Lookup(c.hostType)
			require.True(t, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := scalars.Lookup("Job")
	assert.False(t, ok)
}

func TestNamesSortedAndDistinct(t *testing.T) {
	names := scalars.Names()
	assert.True(t, sort.StringsAreSorted(names))

	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate scalar name %q", n)
		seen[n] = true
	}
	assert.Contains(t, names, "Long")
	assert.Contains(t, names, "GregorianCalendar")
}

func TestDeclarationsSkipBuiltins(t *testing.T) {
	decls := scalars.Declarations()

	for _, builtin := range []string{"ID", "Boolean", "String", "Int", "Float"} {
		assert.NotContains(t, decls, "scalar "+builtin+"\n")
	}
	for _, extra := range []string{"Long", "Short", "Byte", "Char", "BigDecimal", "GregorianCalendar"} {
		assert.Contains(t, decls, "scalar "+extra+"\n")
	}
	for _, line := range strings.Split(strings.TrimSuffix(decls, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "scalar "), "unexpected line %q", line)
	}
}
