// Package mapping loads mapping directives from YAML directive files.
//
// A directive file attaches type and field directives to record types
// without touching their source. Directive values use the same text form
// as source comment directives.
//
// # Schema Overview
//
//	version: "1"
//	transforms:
//	  - name: full_name
//	    func: FullName
//	    package: example.com/app/convert
//	types:
//	  - name: User
//	    package: example.com/app/store
//	    to: ["Person", "PersonDTO, strategy=all"]   # string or list
//	    fields:
//	      - name: name
//	        type: string
//	        to: "Person, field=full_name, with=full_name"
//	      - name: password
//	        to: exclude
//
// Fields without a name are positional and are identified by their index
// in the list. Transforms are optional; when declared, "with" references
// are resolved through them, otherwise the reference is kept as written.
package mapping
