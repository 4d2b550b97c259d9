// Package diagnostic provides the structured build-time errors reported by
// the directive resolution engine.
//
// Every failure is a *Diagnostic carrying a stable Code, the originating
// directive position and the type/field it relates to. Resolution of a type
// aborts on the first Diagnostic; callers resolving many types collect one
// terminal error per type in a Diagnostics value.
//
// Codes:
//   - duplicate_destination_for_strategy
//   - missing_mapping_config
//   - missing_destination
//   - excluded_field_has_other_config
//   - additive_mapping_conflicts_with_automatic
//   - illegal_exclusion
//   - orphan_transform
//   - too_many_strategies
//   - invalid_strategy_identifier
//   - syntax_error, invalid_directive_file (front-ends)
package diagnostic
