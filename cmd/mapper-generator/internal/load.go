package internal

import (
	"errors"
	"path/filepath"
	"strings"

	"directive-mapper/internal/analyze"
	"directive-mapper/internal/directive"
	"directive-mapper/internal/mapping"
)

// load collects type descriptors from the arguments, or from the configuration
// when no argument is given.
func (a *app) load(args []string) ([]*directive.TypeDescriptor, error) {
	files, patterns := a.cfg.Directives, a.cfg.Packages

	if len(args) > 0 {
		files, patterns = splitSources(args)
	}

	if len(files) == 0 && len(patterns) == 0 {
		return nil, errors.New("nothing to load: pass packages or directive files, or list them in the configuration")
	}

	var tds []*directive.TypeDescriptor

	for _, f := range files {
		df, err := mapping.LoadFile(f)
		if err != nil {
			return nil, err
		}

		diags := mapping.Validate(df)
		for _, w := range diags.Warnings {
			a.log.Info("directive file warning", "file", f, "type", w.TypePair, "field", w.FieldPath, "message", w.Message)
		}

		loaded, err := df.Descriptors()
		if err != nil {
			return nil, err
		}

		a.log.V(1).Info("loaded directive file", "file", f, "types", len(loaded))
		tds = append(tds, loaded...)
	}

	if len(patterns) > 0 {
		loaded, err := analyze.NewAnalyzer(a.log.WithName("analyze")).LoadPackages(patterns...)
		if err != nil {
			return nil, err
		}

		tds = append(tds, loaded...)
	}

	return tds, nil
}

// splitSources separates directive files from package patterns.
func splitSources(args []string) (files, patterns []string) {
	for _, arg := range args {
		switch strings.ToLower(filepath.Ext(arg)) {
		case ".yaml", ".yml":
			files = append(files, arg)
		default:
			patterns = append(patterns, arg)
		}
	}

	return files, patterns
}
