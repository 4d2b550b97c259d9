package plan

import (
	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/directive"
)

// Validate checks the cross-directive rules of every field directive against the
// automatic registry. It stops at the first violation.
func Validate(td *directive.TypeDescriptor, reg *Registry) error {
	for i := range td.Fields {
		f := &td.Fields[i]

		for _, fd := range f.Directives {
			if err := validateDirective(f, fd, reg); err != nil {
				return err.WithType(td.ID()).WithField(f.Member.String())
			}
		}
	}

	return nil
}

func validateDirective(f *directive.FieldDescriptor, fd directive.FieldDirective, reg *Registry) *diagnostic.Diagnostic {
	if fd.IsUnconditionalExclusion() {
		return nil
	}

	for _, strategy := range fd.Strategies {
		if reg.Has(fd.Destination, strategy) {
			return diagnostic.New(diagnostic.CodeAdditiveOnAutomatic, fd.Pos,
				"additive mapping to %s for strategy %s conflicts with the automatic mapping declared on the type",
				fd.Destination, strategy)
		}
	}

	if fd.IsScopedExclusion() {
		if !reg.HasDestination(fd.Destination) {
			return diagnostic.New(diagnostic.CodeIllegalExclusion, fd.Pos,
				"cannot exclude field from %s: destination has no automatic mapping", fd.Destination)
		}

		return nil
	}

	for _, strategy := range fd.TransformStrategies() {
		if reg.Has(fd.Destination, strategy) || declaresAdditive(f, fd.Destination, strategy, reg) {
			continue
		}

		fn, _ := fd.TransformFor(strategy)

		return diagnostic.New(diagnostic.CodeOrphanTransform, fd.Pos,
			"transform %s is declared for strategy %s but %s is not mapped with that strategy",
			fn, strategy, fd.Destination)
	}

	return nil
}

// declaresAdditive reports whether some directive of f maps it additively to
// (dest, strategy).
func declaresAdditive(f *directive.FieldDescriptor, dest directive.Destination, strategy directive.Strategy, reg *Registry) bool {
	for _, fd := range f.Directives {
		if fd.Exclude || fd.Destination != dest {
			continue
		}

		if additiveStrategies(fd, reg).Has(strategy) {
			return true
		}
	}

	return false
}
