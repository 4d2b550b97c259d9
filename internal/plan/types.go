package plan

import (
	"directive-mapper/internal/common"
	"directive-mapper/internal/directive"
)

// MappingType tells whether a tree maps every field or only directed ones.
type MappingType int

const (
	// Automatic trees map every non-excluded field.
	Automatic MappingType = iota
	// Additive trees map only explicitly directed fields.
	Additive
)

// String returns a human-readable mapping type.
func (t MappingType) String() string {
	switch t {
	case Automatic:
		return "automatic"
	case Additive:
		return "additive"
	default:
		return common.UnknownStr
	}
}

//go:generate go tool stringer -type=ExprKind -linecomment -output=exprkind_string.go

// ExprKind describes how a destination field value is produced.
type ExprKind int

const (
	DirectCopy    ExprKind = iota // direct-copy
	DirectMove                    // direct-move
	TransformCall                 // transform-call
)

// TreeKey identifies a mapping tree. Tree identity ignores its fields.
type TreeKey struct {
	Owner       string
	Destination directive.Destination
	Strategy    directive.Strategy
}

// MappingField is one resolved source-to-destination field conversion.
type MappingField struct {
	Member directive.Member
	// Type is the declared type of the source member.
	Type      string
	Rename    string
	Strategy  directive.Strategy
	Transform string
}

// Target returns the destination field name.
func (f *MappingField) Target() string {
	if f.Rename != "" {
		return f.Rename
	}

	return f.Member.Key()
}

// Source describes the expression producing the destination value.
func (f *MappingField) Source() SourceExpr {
	expr := SourceExpr{Member: f.Member, Func: f.Transform}

	switch {
	case f.Transform != "":
		expr.Kind = TransformCall
	case f.Strategy == directive.Consuming:
		expr.Kind = DirectMove
	default:
		expr.Kind = DirectCopy
	}

	return expr
}

// SourceExpr is the source side of an assignment.
type SourceExpr struct {
	Kind   ExprKind
	Member directive.Member
	// Func is set for TransformCall.
	Func string
}

// Assignment pairs a destination field with its source expression.
type Assignment struct {
	Target string
	Type   string
	Source SourceExpr
}

// MappingTree is the resolved plan for one (destination, strategy) pair.
type MappingTree struct {
	Key  TreeKey
	Type MappingType

	fields *common.OrderedMap[string, *MappingField]
}

// NewMappingTree creates an empty tree.
func NewMappingTree(key TreeKey, typ MappingType) *MappingTree {
	return &MappingTree{
		Key:    key,
		Type:   typ,
		fields: common.NewOrderedMap[string, *MappingField](),
	}
}

// Owner returns the identity of the annotated type.
func (t *MappingTree) Owner() string { return t.Key.Owner }

// Destination returns the destination reference.
func (t *MappingTree) Destination() directive.Destination { return t.Key.Destination }

// Strategy returns the conversion strategy.
func (t *MappingTree) Strategy() directive.Strategy { return t.Key.Strategy }

// SameTree reports whether both trees have the same identity, ignoring fields.
func (t *MappingTree) SameTree(other *MappingTree) bool {
	return other != nil && t.Key == other.Key
}

// Len returns the number of mapped fields.
func (t *MappingTree) Len() int {
	return t.fields.Len()
}

// Fields returns the mapped fields in declaration order.
func (t *MappingTree) Fields() []*MappingField {
	return t.fields.Values()
}

// Field returns the entry for a member identity.
func (t *MappingTree) Field(memberKey string) (*MappingField, bool) {
	return t.fields.Get(memberKey)
}

// Assignments returns the ordered (destination field, source expression) pairs.
func (t *MappingTree) Assignments() []Assignment {
	fields := t.fields.Values()
	out := make([]Assignment, 0, len(fields))

	for _, f := range fields {
		out = append(out, Assignment{
			Target: f.Target(),
			Type:   f.Type,
			Source: f.Source(),
		})
	}

	return out
}

// upsert inserts f or replaces the entry with the same member identity.
func (t *MappingTree) upsert(f *MappingField) {
	t.fields.Set(f.Member.Key(), f)
}

// remove drops the entry for a member identity.
func (t *MappingTree) remove(memberKey string) bool {
	return t.fields.Delete(memberKey)
}

// Consumer receives resolved trees, typically a code emission back-end.
type Consumer interface {
	Consume(tree *MappingTree) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(tree *MappingTree) error

// Consume calls f(tree).
func (f ConsumerFunc) Consume(tree *MappingTree) error {
	return f(tree)
}

// TypePlan is the resolved output for one annotated type.
type TypePlan struct {
	// Type is the annotated type descriptor the plan was built from.
	Type *directive.TypeDescriptor
	// Registry holds the automatic destinations per strategy.
	Registry *Registry
	// Trees are ordered by creation: automatic trees in registration order,
	// then additive trees in field declaration order.
	Trees []*MappingTree
}

// Tree returns the tree for (destination, strategy), or nil.
func (p *TypePlan) Tree(dest directive.Destination, strategy directive.Strategy) *MappingTree {
	for _, t := range p.Trees {
		if t.Key.Destination == dest && t.Key.Strategy == strategy {
			return t
		}
	}

	return nil
}

// Walk hands every tree to c, stopping at the first error.
func (p *TypePlan) Walk(c Consumer) error {
	for _, t := range p.Trees {
		if err := c.Consume(t); err != nil {
			return err
		}
	}

	return nil
}

// Plan groups the resolved plans of several types.
type Plan struct {
	Types []*TypePlan
}

// Walk hands every tree of every type to c.
func (p *Plan) Walk(c Consumer) error {
	for _, tp := range p.Types {
		if err := tp.Walk(c); err != nil {
			return err
		}
	}

	return nil
}
