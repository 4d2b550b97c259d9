package internal

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"

	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/gen"
	"directive-mapper/internal/plan"
)

func heading(format string, a ...any) string {
	return color.RGB(50, 108, 229).Sprintf(format, a...)
}

// renderPlan prints the plan in the selected output format.
func (a *app) renderPlan(p *plan.Plan) error {
	switch a.outputFlag {
	case "yaml":
		data, err := plan.MarshalYAML(p)
		if err != nil {
			return err
		}

		_, err = a.stdout.Write(data)

		return err
	case "json":
		data, err := plan.MarshalJSON(p)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(a.stdout, string(data))

		return err
	}

	for _, tp := range p.Types {
		_, _ = fmt.Fprintln(a.stdout, heading("%s", tp.Type.ID()))

		for _, tree := range tp.Trees {
			_, _ = fmt.Fprintf(a.stdout, "  -> %s (%s, %s)\n", tree.Destination(), tree.Strategy(), tree.Type)

			for _, as := range tree.Assignments() {
				line := fmt.Sprintf("     %s = %s", as.Target, as.Source.Member)
				if as.Source.Kind == plan.TransformCall {
					line += " via " + as.Source.Func
				}

				_, _ = fmt.Fprintln(a.stdout, line)
			}
		}
	}

	return nil
}

// renderCheck prints every diagnostic followed by a summary line.
func (a *app) renderCheck(valid int, diags diagnostic.Diagnostics) {
	for _, e := range diags.Errors {
		_, _ = fmt.Fprintln(a.stdout, color.RGB(229, 50, 50).Sprintf("Error!"), e.String())
	}

	if !diags.HasErrors() {
		_, _ = fmt.Fprintln(a.stdout, heading("Valid!"), fmt.Sprintf("%d types resolved, no errors found.", valid))
	}
}

// renderGenerated lists written files.
func (a *app) renderGenerated(files []gen.GeneratedFile, outputDir string) {
	for _, f := range files {
		dir := outputDir
		if dir == "" {
			dir = f.Dir
		}

		_, _ = fmt.Fprintln(a.stdout, heading("wrote"), filepath.Join(dir, f.Filename))
	}
}
