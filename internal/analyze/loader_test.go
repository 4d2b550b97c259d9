package analyze

import (
	"go/ast"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"directive-mapper/internal/directive"
)

const storePkg = "directive-mapper/store"

func loadStore(t *testing.T) map[string]*directive.TypeDescriptor {
	t.Helper()

	tds, err := NewAnalyzer(logr.Discard()).LoadPackages(storePkg)
	require.NoError(t, err)

	byName := make(map[string]*directive.TypeDescriptor, len(tds))
	for _, td := range tds {
		byName[td.Name] = td
	}

	return byName
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	tds, err := NewAnalyzer(logr.Discard()).LoadPackages(storePkg)
	require.NoError(t, err)

	var names []string
	for _, td := range tds {
		names = append(names, td.Name)
		assert.Equal(t, storePkg, td.PkgPath)
	}

	// declaration order; Order has no directives
	assert.Equal(t, []string{"Product", "Customer", "OrderItem"}, names)
}

func TestAnalyzer_TypeDirectives(t *testing.T) {
	product := loadStore(t)["Product"]
	require.NotNil(t, product)
	require.Len(t, product.Directives, 2)

	assert.Equal(t, []directive.Destination{"ProductView"}, product.Directives[0].Destinations)
	assert.Equal(t, directive.Strategies{directive.NonConsuming}, product.Directives[0].EffectiveStrategies())
	assert.Equal(t, []directive.Destination{"ProductRecord"}, product.Directives[1].Destinations)
	assert.Equal(t, directive.Strategies{directive.Consuming}, product.Directives[1].Strategies)

	pos := product.Directives[0].Pos
	assert.Equal(t, "types.go", filepath.Base(pos.File))
	assert.Equal(t, 10, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestAnalyzer_FieldDirectives(t *testing.T) {
	product := loadStore(t)["Product"]
	require.NotNil(t, product)

	var names []string
	for _, f := range product.Fields {
		names = append(names, f.Member.Name)
	}

	assert.Equal(t, []string{"ID", "SKU", "Name", "Description", "PriceCents", "Inventory", "CreatedAt"}, names)
	assert.Equal(t, "time.Time", product.Fields[6].Type)
	assert.Equal(t, "int64", product.Fields[0].Type)
	assert.Empty(t, product.Fields[0].Directives)
	assert.Empty(t, product.Fields[2].Directives, "plain doc comments are not directives")

	sku := product.Fields[1]
	require.Len(t, sku.Directives, 1)
	assert.Equal(t, "Code", sku.Directives[0].Rename)
	assert.Equal(t, 14, sku.Directives[0].Pos.Line)

	desc := product.Fields[3]
	require.Len(t, desc.Directives, 1)
	assert.True(t, desc.Directives[0].IsScopedExclusion())

	price := product.Fields[4]
	fn, ok := price.Directives[0].TransformFor(directive.NonConsuming)
	assert.True(t, ok)
	assert.Equal(t, "FormatPrice", fn)
}

func TestAnalyzer_DocAndLineComments(t *testing.T) {
	customer := loadStore(t)["Customer"]
	require.NotNil(t, customer)

	email := customer.Fields[1]
	require.Len(t, email.Directives, 2)
	assert.Equal(t, directive.Destination("CustomerSummary"), email.Directives[0].Destination)
	assert.Equal(t, directive.Destination("CustomerCard"), email.Directives[1].Destination)

	address := customer.Fields[3]
	assert.Equal(t, "*string", address.Type)
	require.Len(t, address.Directives, 1)
	assert.True(t, address.Directives[0].IsUnconditionalExclusion())
}

func TestAnalyzer_MultiNameFields(t *testing.T) {
	item := loadStore(t)["OrderItem"]
	require.NotNil(t, item)
	require.Len(t, item.Fields, 4)

	assert.Equal(t, directive.Member{Name: "ProductID", Index: 0}, item.Fields[0].Member)
	assert.Equal(t, directive.Member{Name: "Quantity", Index: 1}, item.Fields[1].Member)
	assert.Equal(t, "Title", item.Fields[2].Directives[0].Rename)
	assert.Equal(t, 3, item.Fields[3].Member.Index)
}

func TestAnalyzer_LoadError(t *testing.T) {
	_, err := NewAnalyzer(logr.Discard()).LoadPackages("directive-mapper/does/not/exist")
	require.Error(t, err)
}

func TestDirectiveComments(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "directive", text: "//mapper:to Person", want: []string{"Person"}},
		{name: "tab separated", text: "//mapper:to\tPerson, strategy=all", want: []string{"Person, strategy=all"}},
		{name: "empty directive", text: "//mapper:to", want: []string{""}},
		{name: "other prefix", text: "//mapper:tox Person"},
		{name: "spaced comment", text: "// mapper:to Person"},
		{name: "plain comment", text: "// Person is nice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := &ast.CommentGroup{List: []*ast.Comment{{Text: tt.text}}}

			var got []string
			for _, c := range directiveComments(group) {
				got = append(got, c.text)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}
