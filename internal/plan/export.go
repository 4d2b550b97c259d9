package plan

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Document is the serializable form of a Plan.
type Document struct {
	Types []TypeDoc `yaml:"types" json:"types"`
}

// TypeDoc is the serializable form of a TypePlan.
type TypeDoc struct {
	Name      string    `yaml:"name" json:"name"`
	Package   string    `yaml:"package,omitempty" json:"package,omitempty"`
	Automatic []PairDoc `yaml:"automatic,omitempty" json:"automatic,omitempty"`
	Trees     []TreeDoc `yaml:"trees" json:"trees"`
}

// PairDoc is one registered automatic (destination, strategy).
type PairDoc struct {
	Destination string `yaml:"destination" json:"destination"`
	Strategy    string `yaml:"strategy" json:"strategy"`
}

// TreeDoc is the serializable form of a MappingTree.
type TreeDoc struct {
	Destination string     `yaml:"destination" json:"destination"`
	Strategy    string     `yaml:"strategy" json:"strategy"`
	Mapping     string     `yaml:"mapping" json:"mapping"`
	Fields      []FieldDoc `yaml:"fields" json:"fields"`
}

// FieldDoc is one assignment of a tree.
type FieldDoc struct {
	Source    string `yaml:"source" json:"source"`
	Target    string `yaml:"target" json:"target"`
	Type      string `yaml:"type,omitempty" json:"type,omitempty"`
	Kind      string `yaml:"kind" json:"kind"`
	Transform string `yaml:"transform,omitempty" json:"transform,omitempty"`
}

// Export converts a plan into its serializable form.
func Export(p *Plan) Document {
	doc := Document{Types: make([]TypeDoc, 0, len(p.Types))}

	for _, tp := range p.Types {
		td := TypeDoc{
			Name:    tp.Type.Name,
			Package: tp.Type.PkgPath,
			Trees:   make([]TreeDoc, 0, len(tp.Trees)),
		}

		if tp.Registry != nil {
			for _, pair := range tp.Registry.Pairs() {
				td.Automatic = append(td.Automatic, PairDoc{
					Destination: pair.Destination.String(),
					Strategy:    pair.Strategy.String(),
				})
			}
		}

		for _, t := range tp.Trees {
			tree := TreeDoc{
				Destination: t.Destination().String(),
				Strategy:    t.Strategy().String(),
				Mapping:     t.Type.String(),
				Fields:      make([]FieldDoc, 0, t.Len()),
			}

			for _, a := range t.Assignments() {
				tree.Fields = append(tree.Fields, FieldDoc{
					Source:    a.Source.Member.String(),
					Target:    a.Target,
					Type:      a.Type,
					Kind:      a.Source.Kind.String(),
					Transform: a.Source.Func,
				})
			}

			td.Trees = append(td.Trees, tree)
		}

		doc.Types = append(doc.Types, td)
	}

	return doc
}

// MarshalYAML encodes the plan as YAML.
func MarshalYAML(p *Plan) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(Export(p)); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalJSON encodes the plan as indented JSON.
func MarshalJSON(p *Plan) ([]byte, error) {
	return json.MarshalIndent(Export(p), "", "  ")
}
