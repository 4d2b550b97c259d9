package plan

import (
	"fmt"

	"github.com/go-logr/logr"

	"directive-mapper/internal/common"
	"directive-mapper/internal/directive"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// Parallelism bounds the number of types resolved at once by ResolveAll (<= 0 = unlimited).
	Parallelism int
	// SkipValidation disables the cross-directive validation pass. Only meant for tooling
	// that inspects partially invalid input.
	SkipValidation bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{
		Parallelism:    4,
		SkipValidation: false,
	}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	config ResolutionConfig
	log    logr.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(config ResolutionConfig, log logr.Logger) *Resolver {
	return &Resolver{config: config, log: log}
}

// Resolve builds the mapping trees of one annotated type.
func (r *Resolver) Resolve(td *directive.TypeDescriptor) (*TypePlan, error) {
	if td == nil {
		return nil, fmt.Errorf("type descriptor is nil")
	}

	log := r.log.WithValues("type", td.ID())

	if err := td.Check(); err != nil {
		return nil, err
	}

	reg, err := Aggregate(td.ID(), td.Directives)
	if err != nil {
		return nil, err
	}

	b := newTreeBuilder(td, reg, log)
	b.seed()

	for i := range td.Fields {
		b.fold(&td.Fields[i])
	}

	if !r.config.SkipValidation {
		if err := Validate(td, reg); err != nil {
			return nil, err
		}
	}

	trees := b.trees.Values()
	log.V(1).Info("resolved type", "trees", len(trees))

	return &TypePlan{Type: td, Registry: reg, Trees: trees}, nil
}

// treeBuilder owns the trees of one type while fields are folded in.
type treeBuilder struct {
	td    *directive.TypeDescriptor
	reg   *Registry
	log   logr.Logger
	trees *common.OrderedMap[TreeKey, *MappingTree]
}

func newTreeBuilder(td *directive.TypeDescriptor, reg *Registry, log logr.Logger) *treeBuilder {
	return &treeBuilder{
		td:    td,
		reg:   reg,
		log:   log,
		trees: common.NewOrderedMap[TreeKey, *MappingTree](),
	}
}

func (b *treeBuilder) key(dest directive.Destination, strategy directive.Strategy) TreeKey {
	return TreeKey{Owner: b.td.ID(), Destination: dest, Strategy: strategy}
}

// seed creates one empty Automatic tree per registered pair.
func (b *treeBuilder) seed() {
	for _, p := range b.reg.Pairs() {
		key := b.key(p.Destination, p.Strategy)
		b.trees.Set(key, NewMappingTree(key, Automatic))
		b.log.V(1).Info("seeded automatic tree", "destination", p.Destination, "strategy", p.Strategy)
	}
}

// getOrCreate returns the tree for the pair, creating an Additive one if needed.
// An existing tree keeps its mapping type.
func (b *treeBuilder) getOrCreate(dest directive.Destination, strategy directive.Strategy) *MappingTree {
	key := b.key(dest, strategy)
	if t, ok := b.trees.Get(key); ok {
		return t
	}

	t := NewMappingTree(key, Additive)
	b.trees.Set(key, t)
	b.log.V(1).Info("created additive tree", "destination", dest, "strategy", strategy)

	return t
}

// forDestination returns every tree keyed to dest, any strategy.
func (b *treeBuilder) forDestination(dest directive.Destination) []*MappingTree {
	var out []*MappingTree

	for _, t := range b.trees.Values() {
		if t.Key.Destination == dest {
			out = append(out, t)
		}
	}

	return out
}

// fold applies one field to the trees.
func (b *treeBuilder) fold(f *directive.FieldDescriptor) {
	memberKey := f.Member.Key()

	for _, t := range b.trees.Values() {
		if t.Type != Automatic || excludedFrom(f, t.Key.Destination) {
			continue
		}

		t.upsert(&MappingField{Member: f.Member, Type: f.Type, Strategy: t.Key.Strategy})
	}

	var renames []directive.FieldDirective

	for _, fd := range f.Directives {
		if fd.Exclude {
			continue
		}

		for _, strategy := range additiveStrategies(fd, b.reg) {
			t := b.getOrCreate(fd.Destination, strategy)
			fn, _ := fd.TransformFor(strategy)
			t.upsert(merged(t, f, strategy, fd.Rename, fn))
		}

		for _, strategy := range fd.TransformStrategies() {
			t, ok := b.trees.Get(b.key(fd.Destination, strategy))
			if !ok {
				// reported by Validate as an orphan transform
				b.log.V(1).Info("no tree for transform", "field", memberKey,
					"destination", fd.Destination, "strategy", strategy)

				continue
			}

			fn, _ := fd.TransformFor(strategy)
			t.upsert(merged(t, f, strategy, fd.Rename, fn))
		}

		if fd.Rename != "" && len(fd.Strategies) == 0 {
			renames = append(renames, fd)
		}
	}

	// Destination-wide renames apply to every tree of the destination, whatever
	// created it and whenever it was created during this field's pass.
	for _, fd := range renames {
		for _, t := range b.forDestination(fd.Destination) {
			existing, ok := t.Field(memberKey)
			if !ok {
				continue
			}

			c := *existing
			c.Rename = fd.Rename
			t.upsert(&c)
		}
	}

	// Exclusions win over any mapping declared for the field, whatever the directive order.
	for _, fd := range f.Directives {
		switch {
		case fd.IsUnconditionalExclusion():
			for _, t := range b.trees.Values() {
				t.remove(memberKey)
			}
		case fd.IsScopedExclusion():
			for _, t := range b.forDestination(fd.Destination) {
				t.remove(memberKey)
			}
		}
	}
}

// excludedFrom reports whether a directive of f excludes it from dest specifically.
func excludedFrom(f *directive.FieldDescriptor, dest directive.Destination) bool {
	for _, fd := range f.Directives {
		if fd.IsScopedExclusion() && fd.Destination == dest {
			return true
		}
	}

	return false
}

// additiveStrategies returns the strategies a non-exclusion directive maps the
// field under additively. Explicit strategies win; without them, a destination
// that has no automatic mapping at all gets the default strategy.
func additiveStrategies(fd directive.FieldDirective, reg *Registry) directive.Strategies {
	if len(fd.Strategies) > 0 {
		return fd.Strategies
	}

	if !reg.HasDestination(fd.Destination) {
		return directive.Strategies{directive.DefaultStrategy}
	}

	return nil
}

// merged returns the entry of f in t with rename and transform overridden when
// set. A later directive keeps what an earlier one set and it does not name.
func merged(t *MappingTree, f *directive.FieldDescriptor, strategy directive.Strategy, rename, fn string) *MappingField {
	mf := &MappingField{Member: f.Member, Type: f.Type, Strategy: strategy}
	if existing, ok := t.Field(f.Member.Key()); ok {
		c := *existing
		mf = &c
	}

	if rename != "" {
		mf.Rename = rename
	}

	if fn != "" {
		mf.Transform = fn
	}

	return mf
}
