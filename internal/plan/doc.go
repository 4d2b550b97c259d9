// Package plan resolves the directives of an annotated type into a set of
// mapping trees, one per (destination, strategy), ready for code emission.
//
// Resolution pipeline, per type:
//  1. Check the directives structurally (directive.TypeDescriptor.Check)
//  2. Aggregate type directives into a strategy -> destinations registry
//  3. Seed one Automatic tree per registered (destination, strategy)
//  4. Fold every field: default entries, exclusions, additive strategies,
//     transforms, destination-wide renames
//  5. Validate cross-directive rules (additive vs automatic, exclusions,
//     orphan transforms)
//
// Any failure aborts the whole type: there is no partial plan. Types are
// independent and ResolveAll resolves them concurrently.
package plan
