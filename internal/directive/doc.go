// Package directive defines the immutable directive model consumed by the
// resolution engine, and a parser for the textual directive grammar.
//
// A type-level directive declares automatic destinations:
//
//	Person, PersonDTO, strategy=all
//
// A field-level directive refines or opts a single field in or out:
//
//	exclude
//	Person, field=full_name
//	Person, with(consuming)=NameInto, with(non-consuming)=NameTo, strategy=consuming
//	Person, exclude
//
// Strategy selectors are "consuming" (alias "into"), "non-consuming"
// (aliases "non_consuming", "mapper") and "all", which expands to both.
// When no selector is given the non-consuming strategy applies.
package directive
