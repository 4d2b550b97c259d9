package mapping

import (
	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/directive"
)

// Descriptors converts the file into type descriptors, parsing every directive.
// Transform references are resolved through the declared transforms.
// It fails on the first invalid directive; use Validate to collect them all.
func (df *DirectiveFile) Descriptors() ([]*directive.TypeDescriptor, error) {
	if diags := Validate(df); diags.HasErrors() {
		return nil, firstError(diags)
	}

	registry, _ := BuildRegistry(df)
	out := make([]*directive.TypeDescriptor, 0, len(df.Types))

	for i := range df.Types {
		te := &df.Types[i]

		td := &directive.TypeDescriptor{
			Name:    te.Name,
			PkgPath: te.Package,
			Pos:     df.pos(te.line, 0),
		}

		for _, d := range te.To {
			tdir, err := directive.ParseTypeDirective(d.Text, df.pos(d.Line, d.Column))
			if err != nil {
				return nil, err
			}

			td.Directives = append(td.Directives, tdir)
		}

		for j := range te.Fields {
			fe := &te.Fields[j]

			fd := directive.FieldDescriptor{
				Member: directive.Member{Name: fe.Name, Index: j},
				Type:   fe.Type,
			}

			for _, d := range fe.To {
				fdir, err := directive.ParseFieldDirective(d.Text, df.pos(d.Line, d.Column))
				if err != nil {
					return nil, err
				}

				for k := range fdir.Transforms {
					fdir.Transforms[k].Func = registry.Resolve(fdir.Transforms[k].Func)
				}

				fd.Directives = append(fd.Directives, fdir)
			}

			td.Fields = append(td.Fields, fd)
		}

		out = append(out, td)
	}

	return out, nil
}

func firstError(diags *diagnostic.Diagnostics) error {
	d := diags.Errors[0]
	return &d
}
