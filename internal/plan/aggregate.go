package plan

import (
	"directive-mapper/internal/common"
	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/directive"
)

// Pair is a (destination, strategy) couple.
type Pair struct {
	Destination directive.Destination
	Strategy    directive.Strategy
}

// Registry holds the automatic destinations of a type, per strategy.
type Registry struct {
	byStrategy map[directive.Strategy]*common.Set[directive.Destination]
	// pairs in registration order
	pairs []Pair
}

func newRegistry() *Registry {
	return &Registry{byStrategy: make(map[directive.Strategy]*common.Set[directive.Destination])}
}

// Aggregate unions the destinations of every type directive per strategy.
// A destination registered twice for the same strategy by two directive
// occurrences is rejected with DuplicateDestinationForStrategy.
func Aggregate(owner string, directives []directive.TypeDirective) (*Registry, error) {
	reg := newRegistry()

	for _, td := range directives {
		seen := make(map[directive.Destination]bool, len(td.Destinations))

		for _, strategy := range td.EffectiveStrategies() {
			dests, ok := reg.byStrategy[strategy]
			if !ok {
				dests = common.NewSet[directive.Destination]()
				reg.byStrategy[strategy] = dests
			}

			for _, dest := range td.Destinations {
				key := dest + directive.Destination("\x00"+strategy.String())
				if seen[key] {
					continue
				}

				seen[key] = true

				if !dests.Add(dest) {
					return nil, diagnostic.New(diagnostic.CodeDuplicateDestinationForStrategy, td.Pos,
						"destination %s is declared more than once for strategy %s", dest, strategy).
						WithType(owner)
				}

				reg.pairs = append(reg.pairs, Pair{Destination: dest, Strategy: strategy})
			}
		}
	}

	return reg, nil
}

// Has reports whether dest is automatic for strategy.
func (r *Registry) Has(dest directive.Destination, strategy directive.Strategy) bool {
	dests, ok := r.byStrategy[strategy]
	return ok && dests.Contains(dest)
}

// HasDestination reports whether dest is automatic for any strategy.
func (r *Registry) HasDestination(dest directive.Destination) bool {
	for _, dests := range r.byStrategy {
		if dests.Contains(dest) {
			return true
		}
	}

	return false
}

// DestinationsFor returns the automatic destinations of one strategy.
func (r *Registry) DestinationsFor(strategy directive.Strategy) []directive.Destination {
	dests, ok := r.byStrategy[strategy]
	if !ok {
		return nil
	}

	return dests.Items()
}

// Destinations returns the union of automatic destinations across strategies.
func (r *Registry) Destinations() []directive.Destination {
	all := common.NewSet[directive.Destination]()
	for _, p := range r.pairs {
		all.Add(p.Destination)
	}

	return all.Items()
}

// Pairs returns every automatic (destination, strategy) in registration order.
func (r *Registry) Pairs() []Pair {
	out := make([]Pair, len(r.pairs))
	copy(out, r.pairs)

	return out
}
