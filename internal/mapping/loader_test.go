package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/directive"
)

func requireCode(t *testing.T, err error, code diagnostic.Code) {
	t.Helper()
	require.Error(t, err)

	got, ok := diagnostic.CodeOf(err)
	require.True(t, ok, "expected a diagnostic, got %v", err)
	assert.Equal(t, code, got, err.Error())
}

func TestLoadFile(t *testing.T) {
	df, err := LoadFile("testdata/user.yaml")
	require.NoError(t, err)

	assert.Equal(t, "1", df.Version)
	assert.Equal(t, "testdata/user.yaml", df.Path)
	require.Len(t, df.Types, 1)

	user := df.Types[0]
	assert.Equal(t, "User", user.Name)
	assert.Equal(t, 6, user.line)
	assert.Equal(t, []string{"Person", "PersonDTO, strategy=all"}, user.To.Texts())
	require.Len(t, user.Fields, 3)
	assert.Equal(t, DirectiveText{Text: "Person, field=full_name, with=full_name", Line: 12, Column: 13}, user.Fields[0].To[0])
	assert.True(t, user.Fields[2].To.IsEmpty())
}

func TestParse_Defaults(t *testing.T) {
	df, err := Parse([]byte(`
transforms:
  - name: upper
types:
  - name: A
`))
	require.NoError(t, err)
	assert.Equal(t, "1", df.Version)
	assert.Equal(t, "upper", df.Transforms[0].Func)
}

func TestParse_Empty(t *testing.T) {
	df, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, df.Types)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown key", yaml: "types:\n  - name: A\n    destination: B\n"},
		{name: "map as directive", yaml: "types:\n  - name: A\n    to: {x: y}\n"},
		{name: "nested list as directive", yaml: "types:\n  - name: A\n    to: [[B]]\n"},
		{name: "malformed", yaml: "types: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			requireCode(t, err, diagnostic.CodeInvalidDirectiveFile)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	df, err := LoadFile("testdata/user.yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(df, path))

	again, err := LoadFile(path)
	require.NoError(t, err)

	want, err := df.Descriptors()
	require.NoError(t, err)

	got, err := again.Descriptors()
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		assert.Equal(t, want[i].ID(), got[i].ID())
		assert.Len(t, got[i].Fields, len(want[i].Fields))
		assert.Len(t, got[i].Directives, len(want[i].Directives))
	}
}

func TestDirectiveList_MarshalYAML(t *testing.T) {
	single := DirectiveList{{Text: "Person"}}
	data, err := single.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "Person", data)

	multi := DirectiveList{{Text: "Person"}, {Text: "Dto, strategy=consuming"}}
	data, err = multi.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, []string{"Person", "Dto, strategy=consuming"}, data)
}

func TestDescriptors(t *testing.T) {
	df, err := LoadFile("testdata/user.yaml")
	require.NoError(t, err)

	tds, err := df.Descriptors()
	require.NoError(t, err)
	require.Len(t, tds, 1)

	td := tds[0]
	assert.Equal(t, "example.com/app/store.User", td.ID())
	require.Len(t, td.Directives, 2)
	assert.Equal(t, []directive.Destination{"PersonDTO"}, td.Directives[1].Destinations)
	assert.Equal(t, directive.Strategies{directive.NonConsuming, directive.Consuming}, td.Directives[1].Strategies)
	assert.Equal(t, 8, td.Directives[0].Pos.Line)

	require.Len(t, td.Fields, 3)
	name := td.Fields[0]
	assert.Equal(t, directive.Member{Name: "name", Index: 0}, name.Member)
	require.Len(t, name.Directives, 1)
	assert.Equal(t, "full_name", name.Directives[0].Rename)
	fn, ok := name.Directives[0].TransformFor(directive.NonConsuming)
	assert.True(t, ok)
	assert.Equal(t, "FullName", fn)

	assert.True(t, td.Fields[1].Directives[0].IsUnconditionalExclusion())
	assert.Empty(t, td.Fields[2].Directives)
}

func TestDescriptors_Positional(t *testing.T) {
	df, err := Parse([]byte(`
types:
  - name: Pair
    to: Tuple
    fields:
      - type: int
      - type: string
        to: "Tuple, field=second"
`))
	require.NoError(t, err)

	tds, err := df.Descriptors()
	require.NoError(t, err)
	require.Len(t, tds[0].Fields, 2)
	assert.Equal(t, "1", tds[0].Fields[1].Member.Key())
	assert.True(t, tds[0].Fields[1].Member.IsPositional())
}

func TestDescriptors_InvalidDirective(t *testing.T) {
	df, err := Parse([]byte(`
types:
  - name: User
    to: Person
    fields:
      - name: name
        to: "Person, strategy=sometimes"
`))
	require.NoError(t, err)

	_, err = df.Descriptors()
	requireCode(t, err, diagnostic.CodeInvalidStrategyIdentifier)

	var d *diagnostic.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, 7, d.Pos.Line)
	assert.Equal(t, "User", d.TypePair)
}
