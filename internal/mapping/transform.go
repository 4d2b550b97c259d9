package mapping

import (
	"fmt"
	"sort"
)

// TransformRegistry holds the declared transforms and provides lookup.
type TransformRegistry struct {
	transforms map[string]*TransformDef
}

// NewTransformRegistry creates a new empty transform registry.
func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{
		transforms: make(map[string]*TransformDef),
	}
}

// BuildRegistry builds a transform registry from a DirectiveFile.
// Duplicate names are reported; the first declaration is kept.
func BuildRegistry(df *DirectiveFile) (*TransformRegistry, []error) {
	registry := NewTransformRegistry()

	var errs []error

	for i := range df.Transforms {
		def := &df.Transforms[i]

		if def.Name == "" {
			errs = append(errs, fmt.Errorf("transform #%d: name is required", i+1))
			continue
		}

		if registry.Has(def.Name) {
			errs = append(errs, fmt.Errorf("duplicate transform %q", def.Name))
			continue
		}

		registry.Add(def)
	}

	return registry, errs
}

// Add adds a transform to the registry.
func (r *TransformRegistry) Add(def *TransformDef) {
	r.transforms[def.Name] = def
}

// Get returns a transform by name, or nil if not found.
func (r *TransformRegistry) Get(name string) *TransformDef {
	return r.transforms[name]
}

// Has returns true if a transform with the given name exists.
func (r *TransformRegistry) Has(name string) bool {
	_, exists := r.transforms[name]
	return exists
}

// Len returns the number of transforms.
func (r *TransformRegistry) Len() int {
	return len(r.transforms)
}

// Names returns all transform names, sorted.
func (r *TransformRegistry) Names() []string {
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Resolve maps a "with" reference to the function it names. Unknown
// references are returned unchanged.
func (r *TransformRegistry) Resolve(ref string) string {
	if def := r.Get(ref); def != nil {
		return def.FuncCall()
	}

	return ref
}

// FuncCall returns the qualified function reference for a transform.
// Example: "example.com/app/convert.FullName" or "FullName".
func (d *TransformDef) FuncCall() string {
	fn := d.Func
	if fn == "" {
		fn = d.Name
	}

	if d.Package != "" {
		return d.Package + "." + fn
	}

	return fn
}
