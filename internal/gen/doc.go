// Package gen provides deterministic Go code generation for resolved mapping trees.
//
// Generation approach uses text/template + go/format for readable Go code.
// The Generator is a plan.Consumer: every tree becomes one conversion method
// on the annotated type, emitted next to it.
//
// Codegen patterns:
//   - Non-consuming trees: func (s *T) ToDest() Dest, fields are copied
//   - Consuming trees: func (s T) IntoDest() Dest, fields are moved
//   - Transform calls: fn(&s.Field) when non-consuming, fn(s.Field) when consuming
//
// A transform referenced with "with" must therefore have the signature
// func(*Src) Dst for the non-consuming strategy and func(Src) Dst for the
// consuming one. Signatures are not checked; the Go compiler does it.
package gen
