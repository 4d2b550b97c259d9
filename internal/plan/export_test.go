package plan

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"directive-mapper/internal/directive"
)

func exportFixture(t *testing.T) *Plan {
	t.Helper()

	td := typeOf(t, []string{"Person"},
		field("name", "Person, with(consuming)=map_into, with(non-consuming)=map_mapper, strategy=consuming"),
		field("age", "Person, field=_age"),
	)

	p, err := newTestResolver().ResolveAll(context.Background(), []*directive.TypeDescriptor{td})
	require.NoError(t, err)

	return p
}

func TestExport(t *testing.T) {
	doc := Export(exportFixture(t))

	require.Len(t, doc.Types, 1)
	typ := doc.Types[0]
	assert.Equal(t, "User", typ.Name)
	assert.Equal(t, "example.com/store", typ.Package)
	assert.Equal(t, []PairDoc{{Destination: "Person", Strategy: "non-consuming"}}, typ.Automatic)

	require.Len(t, typ.Trees, 2)
	assert.Equal(t, TreeDoc{
		Destination: "Person",
		Strategy:    "non-consuming",
		Mapping:     "automatic",
		Fields: []FieldDoc{
			{Source: "name", Target: "name", Type: "string", Kind: "transform-call", Transform: "map_mapper"},
			{Source: "age", Target: "_age", Type: "string", Kind: "direct-copy"},
		},
	}, typ.Trees[0])
	assert.Equal(t, TreeDoc{
		Destination: "Person",
		Strategy:    "consuming",
		Mapping:     "additive",
		Fields: []FieldDoc{
			{Source: "name", Target: "name", Type: "string", Kind: "transform-call", Transform: "map_into"},
		},
	}, typ.Trees[1])
}

func TestMarshalYAML(t *testing.T) {
	p := exportFixture(t)

	data, err := MarshalYAML(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "strategy: consuming")
	assert.Contains(t, string(data), "target: _age")

	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, Export(p), doc)
}

func TestMarshalJSON(t *testing.T) {
	p := exportFixture(t)

	data, err := MarshalJSON(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind": "transform-call"`)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, Export(p), doc)
}
