package diagnostic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	d := New(CodeIllegalExclusion, Pos{File: "user.go", Line: 12, Column: 2}, "destination %q is not automatic", "Person").
		WithType("store.User").
		WithField("name")

	assert.Equal(t,
		`user.go:12:2 [store.User] name: [illegal_exclusion] destination "Person" is not automatic`,
		d.Error())
}

func TestDiagnostic_StringWithoutPosition(t *testing.T) {
	d := New(CodeMissingDestination, Pos{}, "missing destination")
	assert.Equal(t, "[missing_destination] missing destination", d.Error())
}

func TestCodeOf_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("resolving User: %w", New(CodeOrphanTransform, Pos{}, "orphan"))

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, CodeOrphanTransform, code)

	assert.ErrorIs(t, err, &Diagnostic{Code: CodeOrphanTransform})
	assert.NotErrorIs(t, err, &Diagnostic{Code: CodeIllegalExclusion})

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestDiagnostics_AddErr(t *testing.T) {
	var diags Diagnostics

	diags.AddErr(New(CodeTooManyStrategies, Pos{Line: 3}, "too many"), "store.User")
	diags.AddErr(errors.New("boom"), "store.Order")
	diags.AddWarning(CodeSyntaxError, "odd", "store.Order", "")

	require.Len(t, diags.Errors, 2)
	assert.Equal(t, "store.User", diags.Errors[0].TypePair)
	assert.Equal(t, CodeTooManyStrategies, diags.Errors[0].Code)
	assert.Equal(t, "store.Order", diags.Errors[1].TypePair)
	assert.Len(t, diags.Warnings, 1)
	assert.False(t, diags.IsValid())
	assert.Contains(t, diags.Error().Error(), "boom")
}

func TestPos_String(t *testing.T) {
	assert.Equal(t, "a.go:1:5", Pos{File: "a.go", Line: 1, Column: 5}.String())
	assert.Equal(t, "7", Pos{Line: 7}.String())
	assert.Equal(t, "a.yaml", Pos{File: "a.yaml"}.String())
}
