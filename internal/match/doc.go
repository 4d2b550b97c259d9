// Package match offers fuzzy name matching for diagnostics: identifier
// normalization, edit distance and "did you mean" suggestions for mistyped
// strategy selectors, directive options and transform references.
package match
