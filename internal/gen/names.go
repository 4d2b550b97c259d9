package gen

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"directive-mapper/internal/common"
	"directive-mapper/internal/directive"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one file.
type importSet struct {
	// self is the package the file is generated into.
	self  string
	specs map[string]importSpec
}

func newImportSet(self string) *importSet {
	return &importSet{self: self, specs: make(map[string]importSpec)}
}

// qualify turns "example.com/pkg.Name[Args]" into "pkg.Name[Args]" and records the import.
// References without an import path are returned as written.
func (s *importSet) qualify(ref string) string {
	base, args := ref, ""
	if i := strings.IndexByte(ref, '['); i >= 0 {
		base, args = ref[:i], ref[i:]
	}

	dot := strings.LastIndexByte(base, '.')
	if dot < 0 || !strings.Contains(base[:dot], "/") {
		return ref
	}

	pkgPath, name := base[:dot], base[dot+1:]
	if pkgPath == s.self {
		return name + args
	}

	alias := common.PkgAlias(pkgPath)
	s.specs[pkgPath] = importSpec{Path: pkgPath}

	return alias + "." + name + args
}

// sorted returns the imports ordered by path.
func (s *importSet) sorted() []importSpec {
	out := make([]importSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

// methodName builds the conversion method name: ToX for non-consuming, IntoX for consuming.
func methodName(dest directive.Destination, strategy directive.Strategy) string {
	prefix := "To"
	if strategy == directive.Consuming {
		prefix = "Into"
	}

	return prefix + typeBaseName(dest.String())
}

// typeBaseName returns the exported identifier part of a type reference:
// "example.com/dto.Person[int]" -> "Person".
func typeBaseName(ref string) string {
	if i := strings.IndexByte(ref, '['); i >= 0 {
		ref = ref[:i]
	}

	if i := strings.LastIndexByte(ref, '.'); i >= 0 {
		ref = ref[i+1:]
	}

	return capitalize(ref)
}

// fieldRef checks that a member can be addressed as a Go selector.
func fieldRef(m directive.Member) (string, error) {
	if m.IsPositional() || !isGoIdent(m.Name) {
		return "", fmt.Errorf("member %s cannot be addressed as a Go field", m)
	}

	return m.Name, nil
}

func isGoIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
