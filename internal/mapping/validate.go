package mapping

import (
	"fmt"

	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/directive"
	"directive-mapper/internal/match"
)

// SupportedVersion is the only directive file schema version.
const SupportedVersion = "1"

// Validate checks the structure of a directive file: schema version, names,
// duplicate entries and directive syntax. It collects every problem found.
// Cross-directive rules are left to the resolver.
func Validate(df *DirectiveFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if df == nil {
		res.AddErr(invalidFile(diagnostic.Pos{}, "directive file is nil"), "")
		return res
	}

	filePos := diagnostic.Pos{File: df.Path}

	if df.Version != SupportedVersion {
		res.AddErr(invalidFile(filePos, "unsupported version %q, expected %q", df.Version, SupportedVersion), "")
	}

	registry, errs := BuildRegistry(df)
	for _, err := range errs {
		res.AddErr(invalidFile(filePos, "%v", err), "")
	}

	seenTypes := make(map[string]bool, len(df.Types))

	for i := range df.Types {
		te := &df.Types[i]
		pos := df.pos(te.line, 0)
		id := te.id()

		if te.Name == "" {
			res.AddErr(invalidFile(pos, "type #%d: name is required", i+1), "")
			continue
		}

		if seenTypes[id] {
			res.AddErr(invalidFile(pos, "duplicate type %q", id), id)
			continue
		}

		seenTypes[id] = true

		for _, d := range te.To {
			if _, err := directive.ParseTypeDirective(d.Text, df.pos(d.Line, d.Column)); err != nil {
				res.AddErr(err, id)
			}
		}

		validateFields(df, te, registry, res)
	}

	return res
}

func validateFields(df *DirectiveFile, te *TypeEntry, registry *TransformRegistry, res *diagnostic.Diagnostics) {
	id := te.id()
	seenFields := make(map[string]bool, len(te.Fields))

	for j := range te.Fields {
		fe := &te.Fields[j]

		if fe.Name != "" {
			if seenFields[fe.Name] {
				res.AddErr(invalidFile(df.pos(te.line, 0), "duplicate field %q", fe.Name), id)
				continue
			}

			seenFields[fe.Name] = true
		}

		for _, d := range fe.To {
			fd, err := directive.ParseFieldDirective(d.Text, df.pos(d.Line, d.Column))
			if err != nil {
				res.AddErr(err, id)
				continue
			}

			if registry.Len() == 0 {
				continue
			}

			for _, t := range fd.Transforms {
				if !registry.Has(t.Func) {
					res.AddWarning(diagnostic.CodeInvalidDirectiveFile,
						fmt.Sprintf("transform %q is not declared in transforms%s", t.Func, match.Hint(t.Func, registry.Names())),
						id, fe.Name)
				}
			}
		}
	}
}

func invalidFile(pos diagnostic.Pos, format string, args ...any) error {
	return diagnostic.New(diagnostic.CodeInvalidDirectiveFile, pos, format, args...)
}

func (df *DirectiveFile) pos(line, column int) diagnostic.Pos {
	return diagnostic.Pos{File: df.Path, Line: line, Column: column}
}

func (e *TypeEntry) id() string {
	if e.Package == "" {
		return e.Name
	}

	return e.Package + "." + e.Name
}
