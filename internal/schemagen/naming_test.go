package schemagen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fqueiruga/graphql-server-plugin/internal/schemagen"
)

func TestSchemaName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Job", "Job"},
		{"Outer$Inner", "Outer_Inner"},
		{"Matrix<Job>", "Matrix_Job_"},
		{"pkg.Name", "pkg_Name"},
		{"3dView", "_3dView"},
		{"already_legal_1", "already_legal_1"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, schemagen.SchemaName(c.in), "input %q", c.in)
	}
}

func TestActionFieldName(t *testing.T) {
	assert.Equal(t, "computer_set", schemagen.ActionFieldName("computer-set"))
	assert.Equal(t, "a_b_c", schemagen.ActionFieldName("a-b/c"))
	assert.Equal(t, "", schemagen.ActionFieldName(""))
}
