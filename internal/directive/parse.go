package directive

import (
	"fmt"
	"strings"
	"unicode"

	"directive-mapper/internal/diagnostic"
	"directive-mapper/internal/match"
)

const (
	keyField    = "field"
	keyWith     = "with"
	keyStrategy = "strategy"
	keyExclude  = "exclude"
)

var fieldOptions = []string{keyField, keyWith, keyStrategy}

// item is one comma separated element of a directive.
type item struct {
	key   string // empty for bare items
	arg   string // with(<arg>)
	value string
}

// ParseTypeDirective parses "Dest[, Dest...][, strategy=<sel>...]".
func ParseTypeDirective(text string, pos Pos) (TypeDirective, error) {
	items, err := splitItems(text, pos)
	if err != nil {
		return TypeDirective{}, err
	}

	td := TypeDirective{Pos: pos}

	var selectors []string

	seen := make(map[Destination]bool)

	for _, it := range items {
		switch {
		case it.key == "":
			if !isTypeRef(it.value) {
				return TypeDirective{}, syntaxErr(pos, "invalid destination %q", it.value)
			}

			dest := Destination(it.value)
			if !seen[dest] {
				seen[dest] = true
				td.Destinations = append(td.Destinations, dest)
			}
		case it.key == keyStrategy && it.arg == "":
			selectors = append(selectors, it.value)
		default:
			return TypeDirective{}, syntaxErr(pos, "unexpected type directive option %q%s", it.key, match.Hint(it.key, []string{keyStrategy}))
		}
	}

	if len(td.Destinations) == 0 {
		return TypeDirective{}, diagnostic.New(diagnostic.CodeMissingDestination, pos,
			"type directive must declare at least one destination")
	}

	td.Strategies, err = SelectStrategies(selectors, pos)
	if err != nil {
		return TypeDirective{}, err
	}

	return td, nil
}

// ParseFieldDirective parses a field directive and checks its structure.
func ParseFieldDirective(text string, pos Pos) (FieldDirective, error) {
	items, err := splitItems(text, pos)
	if err != nil {
		return FieldDirective{}, err
	}

	fd := FieldDirective{Pos: pos}

	var selectors []string

	for _, it := range items {
		switch it.key {
		case "":
			if it.value == keyExclude {
				fd.Exclude = true
				continue
			}

			if fd.HasDestination() {
				return FieldDirective{}, syntaxErr(pos,
					"field directive accepts one destination, got %q and %q", fd.Destination, it.value)
			}

			if !isTypeRef(it.value) {
				return FieldDirective{}, syntaxErr(pos, "invalid destination %q", it.value)
			}

			fd.Destination = Destination(it.value)

		case keyField:
			if it.arg != "" || !isMemberRef(it.value) {
				return FieldDirective{}, syntaxErr(pos, "invalid field target %q", it.value)
			}

			fd.Rename = it.value

		case keyWith:
			if !isFuncRef(it.value) {
				return FieldDirective{}, syntaxErr(pos, "invalid transform function %q", it.value)
			}

			strategies := []Strategy{DefaultStrategy}
			if it.arg != "" {
				strategies, err = ParseSelector(it.arg, pos)
				if err != nil {
					return FieldDirective{}, err
				}
			}

			for _, s := range strategies {
				fd.Transforms = setTransform(fd.Transforms, Transform{Strategy: s, Func: it.value})
			}

		case keyStrategy:
			if it.arg != "" {
				return FieldDirective{}, syntaxErr(pos, "strategy does not take an argument")
			}

			selectors = append(selectors, it.value)

		default:
			return FieldDirective{}, syntaxErr(pos, "unknown field directive option %q%s", it.key, match.Hint(it.key, fieldOptions))
		}
	}

	fd.Strategies, err = SelectStrategies(selectors, pos)
	if err != nil {
		return FieldDirective{}, err
	}

	if err := fd.Check(); err != nil {
		return FieldDirective{}, err
	}

	return fd, nil
}

// setTransform replaces the binding for t.Strategy or appends it.
func setTransform(ts []Transform, t Transform) []Transform {
	for i := range ts {
		if ts[i].Strategy == t.Strategy {
			ts[i] = t
			return ts
		}
	}

	return append(ts, t)
}

// splitItems splits on top-level commas and decodes each element.
// Empty elements (e.g. a trailing comma) are ignored.
func splitItems(text string, pos Pos) ([]item, error) {
	var (
		parts []string
		depth int
		start int
	)

	for i, r := range text {
		switch r {
		case '(', '[', '<', '{':
			depth++
		case ')', ']', '>', '}':
			depth--
			if depth < 0 {
				return nil, syntaxErr(pos, "unbalanced %q in %q", r, text)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return nil, syntaxErr(pos, "unbalanced brackets in %q", text)
	}

	parts = append(parts, text[start:])

	items := make([]item, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		it, err := parseItem(p, pos)
		if err != nil {
			return nil, err
		}

		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, syntaxErr(pos, "directive should not be empty")
	}

	return items, nil
}

func parseItem(p string, pos Pos) (item, error) {
	eq := strings.IndexByte(p, '=')
	if eq < 0 {
		return item{value: p}, nil
	}

	key := strings.TrimSpace(p[:eq])
	value := strings.TrimSpace(p[eq+1:])

	if value == "" {
		return item{}, syntaxErr(pos, "option %q has no value", key)
	}

	var arg string

	if open := strings.IndexByte(key, '('); open >= 0 {
		if !strings.HasSuffix(key, ")") {
			return item{}, syntaxErr(pos, "malformed option %q", key)
		}

		arg = strings.TrimSpace(key[open+1 : len(key)-1])
		key = strings.TrimSpace(key[:open])

		if arg == "" {
			return item{}, syntaxErr(pos, "option %q has an empty argument", key)
		}
	}

	if !isIdent(key) {
		return item{}, syntaxErr(pos, "malformed option %q", key)
	}

	return item{key: key, arg: arg, value: value}, nil
}

func syntaxErr(pos Pos, format string, args ...any) error {
	return diagnostic.New(diagnostic.CodeSyntaxError, pos, "%s", fmt.Sprintf(format, args...))
}

// isIdent reports whether s is a plain identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}

		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return true
}

// isMemberRef accepts identifiers and positional indices.
func isMemberRef(s string) bool {
	if isIdent(s) {
		return true
	}

	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// isFuncRef accepts dotted identifiers such as "conv.NameTo", optionally
// qualified by an import path ("example.com/conv.NameTo").
func isFuncRef(s string) bool {
	if slash := strings.LastIndexByte(s, '/'); slash >= 0 {
		if !isImportPath(s[:slash]) || !strings.Contains(s[slash+1:], ".") {
			return false
		}

		s = s[slash+1:]
	}

	for _, part := range strings.Split(s, ".") {
		if !isIdent(part) {
			return false
		}
	}

	return true
}

// isTypeRef accepts dotted identifiers optionally followed by type arguments.
func isTypeRef(s string) bool {
	base := s
	if i := strings.IndexAny(s, "[<"); i >= 0 {
		base = s[:i]
	}

	return isFuncRef(base)
}

func isImportPath(s string) bool {
	if s == "" || strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/") || strings.Contains(s, "//") {
		return false
	}

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("/._-~", r) {
			continue
		}

		return false
	}

	return true
}
