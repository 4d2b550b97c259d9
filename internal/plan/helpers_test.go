package plan

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/directive"
)

// typeOf builds a descriptor from directive text: typeDirs are type-level
// directives, fields maps "name" -> field directives, declared in order.
type fieldSpec struct {
	name string
	typ  string
	dirs []string
}

func typeOf(t *testing.T, typeDirs []string, fields ...fieldSpec) *directive.TypeDescriptor {
	t.Helper()

	td := &directive.TypeDescriptor{Name: "User", PkgPath: "example.com/store"}

	for i, text := range typeDirs {
		d, err := directive.ParseTypeDirective(text, directive.Pos{File: "user.go", Line: i + 1})
		require.NoError(t, err)

		td.Directives = append(td.Directives, d)
	}

	for i, f := range fields {
		fd := directive.FieldDescriptor{
			Member: directive.Member{Name: f.name, Index: i},
			Type:   f.typ,
		}

		for j, text := range f.dirs {
			d, err := directive.ParseFieldDirective(text, directive.Pos{File: "user.go", Line: 10 + i, Column: j + 1})
			require.NoError(t, err)

			fd.Directives = append(fd.Directives, d)
		}

		td.Fields = append(td.Fields, fd)
	}

	return td
}

func field(name string, dirs ...string) fieldSpec {
	return fieldSpec{name: name, typ: "string", dirs: dirs}
}

func newTestResolver() *Resolver {
	return NewResolver(DefaultConfig(), logr.Discard())
}

func requireCode(t *testing.T, err error, code diagnostic.Code) {
	t.Helper()
	require.Error(t, err)

	got, ok := diagnostic.CodeOf(err)
	require.True(t, ok, "expected a diagnostic, got %v", err)
	assert.Equal(t, code, got, err.Error())
}

func keys(tree *MappingTree) []string {
	var out []string
	for _, f := range tree.Fields() {
		out = append(out, f.Member.Key())
	}

	return out
}
