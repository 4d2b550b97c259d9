package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/go-logr/logr"
	"golang.org/x/tools/go/packages"

	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/directive"
)

// DirectivePrefix starts every comment directive.
const DirectivePrefix = "//mapper:to"

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// Analyzer loads Go packages and collects annotated types.
type Analyzer struct {
	log logr.Logger
	// Dir is the working directory for package patterns; empty means the current one.
	Dir string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(log logr.Logger) *Analyzer {
	return &Analyzer{log: log}
}

// LoadPackages loads the specified packages and returns their annotated types.
// Patterns are standard Go package patterns (e.g., "./store", "directive-mapper/store").
// Types come in package, file and declaration order.
func (a *Analyzer) LoadPackages(patterns ...string) ([]*directive.TypeDescriptor, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	var out []*directive.TypeDescriptor

	for _, pkg := range pkgs {
		tds, err := a.processPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		out = append(out, tds...)
	}

	return out, nil
}

// processPackage extracts annotated struct types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) ([]*directive.TypeDescriptor, error) {
	var out []*directive.TypeDescriptor

	qualifier := types.RelativeTo(pkg.Types)

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				td, err := a.analyzeStruct(pkg, qualifier, ts, st, doc)
				if err != nil {
					return nil, err
				}

				if td != nil {
					out = append(out, td)
				}
			}
		}
	}

	a.log.V(1).Info("loaded package", "package", pkg.PkgPath, "types", len(out))

	return out, nil
}

// analyzeStruct builds the descriptor of one struct. It returns nil when the
// struct carries no directive at all.
func (a *Analyzer) analyzeStruct(
	pkg *packages.Package,
	qualifier types.Qualifier,
	ts *ast.TypeSpec,
	st *ast.StructType,
	doc *ast.CommentGroup,
) (*directive.TypeDescriptor, error) {
	td := &directive.TypeDescriptor{
		Name:    ts.Name.Name,
		PkgPath: pkg.PkgPath,
		Pos:     position(pkg.Fset, ts.Pos()),
	}

	annotated := false

	for _, c := range directiveComments(doc) {
		d, err := directive.ParseTypeDirective(c.text, position(pkg.Fset, c.pos))
		if err != nil {
			return nil, attribute(err, td.ID(), "")
		}

		td.Directives = append(td.Directives, d)
		annotated = true
	}

	index := 0

	for _, field := range st.Fields.List {
		typ := types.ExprString(field.Type)
		if tv, ok := pkg.TypesInfo.Types[field.Type]; ok && tv.Type != nil {
			typ = types.TypeString(tv.Type, qualifier)
		}

		names := fieldNames(field)

		var dirs []directive.FieldDirective

		for _, c := range append(directiveComments(field.Doc), directiveComments(field.Comment)...) {
			d, err := directive.ParseFieldDirective(c.text, position(pkg.Fset, c.pos))
			if err != nil {
				return nil, attribute(err, td.ID(), strings.Join(names, ","))
			}

			dirs = append(dirs, d)
			annotated = true
		}

		for _, name := range names {
			td.Fields = append(td.Fields, directive.FieldDescriptor{
				Member:     directive.Member{Name: name, Index: index},
				Type:       typ,
				Directives: dirs,
			})
			index++
		}
	}

	if !annotated {
		return nil, nil
	}

	a.log.V(1).Info("annotated type", "type", td.ID(), "directives", len(td.Directives), "fields", len(td.Fields))

	return td, nil
}

// fieldNames returns the member names declared by one field entry. Embedded
// fields are named after their type.
func fieldNames(field *ast.Field) []string {
	if len(field.Names) == 0 {
		return []string{embeddedName(field.Type)}
	}

	names := make([]string, 0, len(field.Names))
	for _, n := range field.Names {
		names = append(names, n.Name)
	}

	return names
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	case *ast.Ident:
		return e.Name
	default:
		return types.ExprString(expr)
	}
}

type comment struct {
	text string
	pos  token.Pos
}

// directiveComments returns the directive lines of a comment group.
func directiveComments(group *ast.CommentGroup) []comment {
	if group == nil {
		return nil
	}

	var out []comment

	for _, c := range group.List {
		rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok {
			continue
		}

		// "//mapper:tox" is not a directive
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}

		out = append(out, comment{text: strings.TrimSpace(rest), pos: c.Pos()})
	}

	return out
}

func position(fset *token.FileSet, pos token.Pos) directive.Pos {
	p := fset.Position(pos)
	return directive.Pos{File: p.Filename, Line: p.Line, Column: p.Column}
}

func attribute(err error, typ, field string) error {
	if d, ok := err.(*diagnostic.Diagnostic); ok {
		d = d.WithType(typ)
		if field != "" {
			d = d.WithField(field)
		}

		return d
	}

	return err
}
