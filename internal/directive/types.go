package directive

import (
	"strconv"

	"directive-mapper/internal/diagnostic"
)

// Pos is the source location of a directive.
type Pos = diagnostic.Pos

// Destination references the record shape a type maps to (e.g. "Person", "dto.Person").
type Destination string

// String returns the destination reference.
func (d Destination) String() string {
	return string(d)
}

// Member identifies a field of the annotated type, by name or by position.
type Member struct {
	// Name is empty for positional members.
	Name string
	// Index is the declaration position of the field.
	Index int
}

// Key returns the member identity: the name when present, otherwise the index.
func (m Member) Key() string {
	if m.Name != "" {
		return m.Name
	}

	return strconv.Itoa(m.Index)
}

// IsPositional reports whether the member has no name.
func (m Member) IsPositional() bool {
	return m.Name == ""
}

// String returns a human-readable member reference.
func (m Member) String() string {
	return m.Key()
}

// TypeDirective declares automatic destinations for a set of strategies.
type TypeDirective struct {
	Destinations []Destination
	// Strategies is empty when no selector was given.
	Strategies Strategies
	Pos        Pos
}

// EffectiveStrategies returns the declared strategies, or the default one.
func (d TypeDirective) EffectiveStrategies() Strategies {
	if len(d.Strategies) == 0 {
		return Strategies{DefaultStrategy}
	}

	return d.Strategies
}

// Transform binds a transform function to a strategy.
type Transform struct {
	Strategy Strategy
	// Func is an opaque reference to the transform function.
	Func string
}

// FieldDirective configures how one field maps to one destination.
type FieldDirective struct {
	// Destination is empty only for an unconditional exclusion.
	Destination Destination
	// Rename is the destination field name, empty to keep the member name.
	Rename string
	// Transforms lists the declared with(...) functions.
	Transforms []Transform
	// Strategies lists explicitly selected strategies (additive mapping).
	Strategies Strategies
	Exclude    bool
	Pos        Pos
}

// HasDestination reports whether the directive references a destination.
func (d FieldDirective) HasDestination() bool {
	return d.Destination != ""
}

// IsUnconditionalExclusion reports whether the field is excluded from every destination.
func (d FieldDirective) IsUnconditionalExclusion() bool {
	return d.Exclude && !d.HasDestination()
}

// IsScopedExclusion reports whether the field is excluded from one destination only.
func (d FieldDirective) IsScopedExclusion() bool {
	return d.Exclude && d.HasDestination()
}

// TransformFor returns the transform bound to strategy. Later bindings win.
func (d FieldDirective) TransformFor(strategy Strategy) (string, bool) {
	fn, found := "", false

	for _, t := range d.Transforms {
		if t.Strategy == strategy {
			fn, found = t.Func, true
		}
	}

	return fn, found
}

// TransformStrategies returns the strategies that carry a transform, in canonical order.
func (d FieldDirective) TransformStrategies() Strategies {
	var out Strategies
	for _, t := range d.Transforms {
		out = append(out, t.Strategy)
	}

	return out.Normalize()
}

// hasOtherConfig reports whether anything besides destination/exclude is set.
func (d FieldDirective) hasOtherConfig() bool {
	return d.Rename != "" || len(d.Transforms) > 0 || len(d.Strategies) > 0
}

// Check validates the structure of the directive on its own.
func (d FieldDirective) Check() error {
	if d.Exclude {
		if d.hasOtherConfig() {
			return diagnostic.New(diagnostic.CodeExcludedFieldHasOtherConfig, d.Pos,
				"excluded field cannot also carry field, with or strategy configuration")
		}

		return nil
	}

	if !d.HasDestination() {
		return diagnostic.New(diagnostic.CodeMissingDestination, d.Pos,
			"destination is mandatory unless the directive is a plain exclude")
	}

	if !d.hasOtherConfig() {
		return diagnostic.New(diagnostic.CodeMissingMappingConfig, d.Pos,
			"directive for %s should be used with at least field, with, strategy or exclude", d.Destination)
	}

	return nil
}

// FieldDescriptor is one member of an annotated type.
type FieldDescriptor struct {
	Member Member
	// Type is the declared type, as written in the source.
	Type       string
	Directives []FieldDirective
}

// TypeDescriptor is an annotated record type with its field and type directives.
type TypeDescriptor struct {
	Name       string
	PkgPath    string
	Fields     []FieldDescriptor
	Directives []TypeDirective
	Pos        Pos
}

// ID returns the qualified type identity.
func (t *TypeDescriptor) ID() string {
	if t == nil {
		return "<nil>"
	}

	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Check validates every directive of the type structurally.
// It returns the first violation, attributed to the type and field.
func (t *TypeDescriptor) Check() error {
	for _, td := range t.Directives {
		if len(td.Destinations) == 0 {
			return diagnostic.New(diagnostic.CodeMissingDestination, td.Pos,
				"type directive must declare at least one destination").WithType(t.ID())
		}

		for _, s := range td.Strategies {
			if !s.IsValid() {
				return diagnostic.New(diagnostic.CodeInvalidStrategyIdentifier, td.Pos,
					"invalid strategy %d", int(s)).WithType(t.ID())
			}
		}
	}

	for _, f := range t.Fields {
		for _, fd := range f.Directives {
			if err := fd.Check(); err != nil {
				if d, ok := err.(*diagnostic.Diagnostic); ok {
					return d.WithType(t.ID()).WithField(f.Member.String())
				}

				return err
			}

			if len(fd.Strategies) > MaxStrategiesPerDirective {
				return diagnostic.New(diagnostic.CodeTooManyStrategies, fd.Pos,
					"only %d strategies are available per directive", MaxStrategiesPerDirective).
					WithType(t.ID()).WithField(f.Member.String())
			}
		}
	}

	return nil
}
