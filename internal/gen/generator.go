package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"strings"
	"text/template"

	"directive-mapper/internal/common"
	"directive-mapper/internal/directive"
	"directive-mapper/internal/match"
	"directive-mapper/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName overrides the package clause of generated files.
	// Empty means the last element of the annotated type's package path.
	PackageName string
	// OutputDir is the directory where generated files are written.
	// Empty means next to the annotated type.
	OutputDir string
	// FileSuffix is appended to the lower-cased type name to build file names.
	FileSuffix string
	// GenerateComments enables generation of explanatory comments.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "",
		OutputDir:        "",
		FileSuffix:       "_mapper.go",
		GenerateComments: true,
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "user_mapper.go").
	Filename string
	// Dir is the directory of the annotated type, when known.
	Dir string
	// Content is the formatted Go source code.
	Content []byte
}

// Generator generates Go code from resolved mapping trees.
type Generator struct {
	config GeneratorConfig

	// types maps owner identities to their descriptors for the current run.
	types map[string]*directive.TypeDescriptor
	// methods collects the rendered methods per owner, in consumption order.
	methods *common.OrderedMap[string, []methodData]
}

var _ plan.Consumer = (*Generator)(nil)

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.FileSuffix == "" {
		config.FileSuffix = DefaultGeneratorConfig().FileSuffix
	}

	return &Generator{config: config}
}

// Generate generates one file per annotated type of the plan.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	g.reset()

	for _, tp := range p.Types {
		g.types[tp.Type.ID()] = tp.Type
	}

	if err := p.Walk(g); err != nil {
		return nil, err
	}

	return g.Flush()
}

// Consume renders one tree into a conversion method. The owner's descriptor
// must be known, either from Generate or from Register.
func (g *Generator) Consume(tree *plan.MappingTree) error {
	if g.types == nil {
		g.reset()
	}

	td, ok := g.types[tree.Owner()]
	if !ok {
		return fmt.Errorf("generating %s: type is not registered", tree.Owner())
	}

	m, err := g.buildMethod(td, tree)
	if err != nil {
		return fmt.Errorf("generating %s->%s (%s): %w", tree.Owner(), tree.Destination(), tree.Strategy(), err)
	}

	existing, _ := g.methods.Get(tree.Owner())
	for _, other := range existing {
		if other.Name == m.Name {
			return fmt.Errorf("generating %s: method %s is generated twice", tree.Owner(), m.Name)
		}
	}

	g.methods.Set(tree.Owner(), append(existing, m))

	return nil
}

// Register makes a type known to Consume without going through Generate.
func (g *Generator) Register(td *directive.TypeDescriptor) {
	if g.types == nil {
		g.reset()
	}

	g.types[td.ID()] = td
}

// Flush renders the consumed trees into files and clears the generator.
func (g *Generator) Flush() ([]GeneratedFile, error) {
	if g.methods == nil {
		return nil, nil
	}

	var files []GeneratedFile

	for _, owner := range g.methods.Keys() {
		methods, _ := g.methods.Get(owner)

		file, err := g.generateType(g.types[owner], methods)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", owner, err)
		}

		files = append(files, *file)
	}

	g.reset()

	return files, nil
}

func (g *Generator) reset() {
	g.types = make(map[string]*directive.TypeDescriptor)
	g.methods = common.NewOrderedMap[string, []methodData]()
}

// buildMethod constructs the template data of one conversion method.
func (g *Generator) buildMethod(td *directive.TypeDescriptor, tree *plan.MappingTree) (methodData, error) {
	m := methodData{
		Name:      methodName(tree.Destination(), tree.Strategy()),
		Source:    td.Name,
		Dest:      tree.Destination().String(),
		Consuming: tree.Strategy() == directive.Consuming,
		Strategy:  tree.Strategy().String(),
		Mapping:   tree.Type.String(),
	}

	for _, a := range tree.Assignments() {
		src, err := fieldRef(a.Source.Member)
		if err != nil {
			return methodData{}, err
		}

		if !isGoIdent(a.Target) {
			return methodData{}, fmt.Errorf("destination field %q is not a Go identifier", a.Target)
		}

		m.Assignments = append(m.Assignments, assignmentData{
			Target: a.Target,
			Kind:   a.Source.Kind,
			Field:  src,
			Func:   a.Source.Func,
			Type:   a.Type,
		})
	}

	return m, nil
}

// generateType renders the file of one annotated type.
func (g *Generator) generateType(td *directive.TypeDescriptor, methods []methodData) (*GeneratedFile, error) {
	imports := newImportSet(td.PkgPath)

	for i := range methods {
		m := &methods[i]
		m.Dest = imports.qualify(m.Dest)

		for j := range m.Assignments {
			a := &m.Assignments[j]
			if a.Func != "" {
				a.Func = imports.qualify(a.Func)
			}

			a.Expr = sourceExpr(a, m.Consuming)
		}
	}

	pkgName := g.config.PackageName
	if pkgName == "" {
		pkgName = common.PkgAlias(td.PkgPath)
	}

	if pkgName == "" {
		return nil, fmt.Errorf("package name is unknown, set one in the configuration")
	}

	data := &templateData{
		PackageName:      pkgName,
		Filename:         strings.Join(match.Tokens(td.Name), "_") + g.config.FileSuffix,
		Imports:          imports.sorted(),
		Source:           td.Name,
		Methods:          methods,
		GenerateComments: g.config.GenerateComments,
	}

	var dir string
	if td.Pos.File != "" {
		dir = filepath.Dir(td.Pos.File)
	}

	var buf bytes.Buffer
	if err := mapperTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	// Format the generated code
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Dir:      dir,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Dir:      dir,
		Content:  formatted,
	}, nil
}

// sourceExpr renders the value expression of one assignment.
func sourceExpr(a *assignmentData, consuming bool) string {
	switch a.Kind {
	case plan.TransformCall:
		if consuming {
			return a.Func + "(s." + a.Field + ")"
		}

		return a.Func + "(&s." + a.Field + ")"
	default:
		return "s." + a.Field
	}
}

// templateData holds all data needed for the mapper template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []importSpec
	Source           string
	Methods          []methodData
	GenerateComments bool
}

// methodData is one conversion method.
type methodData struct {
	Name        string
	Source      string
	Dest        string
	Consuming   bool
	Strategy    string
	Mapping     string
	Assignments []assignmentData
}

// assignmentData represents a single field assignment in the method.
type assignmentData struct {
	Target string
	Kind   plan.ExprKind
	Field  string
	Func   string
	Type   string
	Expr   string
}

var mapperTemplate = template.Must(template.New("mapper").Parse(`// Code generated by mapper-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Methods}}
{{if $.GenerateComments}}// {{.Name}} converts {{.Source}} into {{.Dest}} ({{.Strategy}}, {{.Mapping}} mapping).
{{end}}func (s {{if not .Consuming}}*{{end}}{{.Source}}) {{.Name}}() {{.Dest}} {
{{if .Assignments}}	return {{.Dest}}{
{{range .Assignments}}		{{.Target}}: {{.Expr}},{{if and $.GenerateComments .Func}} // {{.Kind}}{{end}}
{{end}}	}
{{else}}	return {{.Dest}}{}
{{end}}}
{{end}}
`))
