package plan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/directive"
)

func named(td *directive.TypeDescriptor, name string) *directive.TypeDescriptor {
	td.Name = name
	return td
}

func TestResolveAll(t *testing.T) {
	tds := []*directive.TypeDescriptor{
		named(typeOf(t, []string{"Person"}, field("name")), "A"),
		named(typeOf(t, []string{"Account, strategy=consuming"}, field("id")), "B"),
		named(typeOf(t, nil, field("email", "Summary, field=mail")), "C"),
	}

	for _, parallelism := range []int{0, 1, 4} {
		cfg := DefaultConfig()
		cfg.Parallelism = parallelism

		p, err := NewResolver(cfg, newTestResolver().log).ResolveAll(context.Background(), tds)
		require.NoError(t, err)
		require.Len(t, p.Types, 3)

		for i, tp := range p.Types {
			assert.Same(t, tds[i], tp.Type)
		}
	}
}

func TestResolveAll_FailFast(t *testing.T) {
	tds := []*directive.TypeDescriptor{
		named(typeOf(t, []string{"Person"}, field("name")), "A"),
		named(typeOf(t, []string{"Person"}, field("name", "Person, strategy=non-consuming")), "B"),
	}

	p, err := newTestResolver().ResolveAll(context.Background(), tds)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "example.com/store.B")
	requireCode(t, err, diagnostic.CodeAdditiveOnAutomatic)
}

func TestResolveAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestResolver().ResolveAll(ctx, []*directive.TypeDescriptor{typeOf(t, []string{"Person"})})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheck_CollectsEveryFailure(t *testing.T) {
	tds := []*directive.TypeDescriptor{
		named(typeOf(t, []string{"Person"}, field("name", "Person, strategy=non-consuming")), "A"),
		named(typeOf(t, []string{"Person"}, field("name")), "B"),
		named(typeOf(t, nil, field("name", "Person, exclude")), "C"),
	}

	p, diags := newTestResolver().Check(context.Background(), tds)
	require.Len(t, p.Types, 1)
	assert.Equal(t, "B", p.Types[0].Type.Name)

	require.Len(t, diags.Errors, 2)
	assert.Equal(t, diagnostic.CodeAdditiveOnAutomatic, diags.Errors[0].Code)
	assert.Equal(t, "example.com/store.A", diags.Errors[0].TypePair)
	assert.Equal(t, diagnostic.CodeIllegalExclusion, diags.Errors[1].Code)
	assert.Error(t, diags.Error())
}

func TestPlan_Walk(t *testing.T) {
	tds := []*directive.TypeDescriptor{
		named(typeOf(t, []string{"Person, strategy=all"}, field("name")), "A"),
		named(typeOf(t, nil, field("email", "Summary, field=mail")), "B"),
	}

	p, err := newTestResolver().ResolveAll(context.Background(), tds)
	require.NoError(t, err)

	var seen []string
	err = p.Walk(ConsumerFunc(func(tree *MappingTree) error {
		seen = append(seen, tree.Owner()+"->"+tree.Destination().String()+"/"+tree.Strategy().String())
		return nil
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"example.com/store.A->Person/non-consuming",
		"example.com/store.A->Person/consuming",
		"example.com/store.B->Summary/non-consuming",
	}, seen)
}

func TestPlan_WalkStopsOnError(t *testing.T) {
	p, err := newTestResolver().ResolveAll(context.Background(), []*directive.TypeDescriptor{
		typeOf(t, []string{"Person, strategy=all"}, field("name")),
	})
	require.NoError(t, err)

	calls := 0
	err = p.Walk(ConsumerFunc(func(*MappingTree) error {
		calls++
		return assert.AnError
	}))
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestBatch_NilDescriptor(t *testing.T) {
	tds := []*directive.TypeDescriptor{
		named(typeOf(t, []string{"Person"}, field("name")), "A"),
		nil,
	}

	_, err := newTestResolver().ResolveAll(context.Background(), tds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve <nil>")

	p, diags := newTestResolver().Check(context.Background(), tds)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "<nil>", diags.Errors[0].TypePair)
	require.Len(t, p.Types, 1)
	assert.Same(t, tds[0], p.Types[0].Type)
}
