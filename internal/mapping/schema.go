package mapping

// DirectiveFile is the root of a YAML directive file.
type DirectiveFile struct {
	// Version of the schema. Defaults to "1".
	Version string `yaml:"version"`

	// Transforms declares named transform functions.
	Transforms []TransformDef `yaml:"transforms,omitempty"`

	// Types lists the annotated record types.
	Types []TypeEntry `yaml:"types"`

	// Path is the file the directives were loaded from, if any.
	Path string `yaml:"-"`
}

// TypeEntry attaches directives to one record type.
type TypeEntry struct {
	// Name of the record type.
	Name string `yaml:"name"`

	// Package is the import path of the type, optional.
	Package string `yaml:"package,omitempty"`

	// To holds the type directives.
	To DirectiveList `yaml:"to,omitempty"`

	// Fields lists the members of the type in declaration order.
	Fields []FieldEntry `yaml:"fields,omitempty"`

	line int
}

// FieldEntry attaches directives to one member.
type FieldEntry struct {
	// Name is empty for positional members.
	Name string `yaml:"name,omitempty"`

	// Type is the declared type, informational.
	Type string `yaml:"type,omitempty"`

	// To holds the field directives.
	To DirectiveList `yaml:"to,omitempty"`
}

// TransformDef names a transform function usable in "with" references.
type TransformDef struct {
	// Name is the identifier used in directives.
	Name string `yaml:"name"`

	// Func is the actual function name. Defaults to Name if not specified.
	Func string `yaml:"func,omitempty"`

	// Package is the import path where the function is defined.
	// If empty, the function is expected next to the generated code.
	Package string `yaml:"package,omitempty"`

	// Description is an optional human-readable description.
	Description string `yaml:"description,omitempty"`
}

// DirectiveText is one directive with the location it was written at.
type DirectiveText struct {
	Text   string
	Line   int
	Column int
}

// DirectiveList is a list of directives written either as a single string or an array.
type DirectiveList []DirectiveText
