// Package analyze loads Go packages and extracts mapping directives from
// comments.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. A struct
// type is annotated with "//mapper:to" lines in its doc comment; each field
// may carry its own "//mapper:to" lines in its doc or trailing comment:
//
//	// User is a stored account.
//	//
//	//mapper:to Person, strategy=all
//	type User struct {
//		Name string //mapper:to Person, field=FullName
//		//mapper:to exclude
//		Password string
//	}
//
// Every annotated type becomes a directive.TypeDescriptor, with fields in
// declaration order and positions taken from the file set.
package analyze
