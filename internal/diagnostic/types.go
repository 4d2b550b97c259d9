package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"directive-mapper/internal/common"
)

// Code identifies a class of diagnostic.
type Code string

const (
	CodeDuplicateDestinationForStrategy Code = "duplicate_destination_for_strategy"
	CodeMissingMappingConfig            Code = "missing_mapping_config"
	CodeMissingDestination              Code = "missing_destination"
	CodeExcludedFieldHasOtherConfig     Code = "excluded_field_has_other_config"
	CodeAdditiveOnAutomatic             Code = "additive_mapping_conflicts_with_automatic"
	CodeIllegalExclusion                Code = "illegal_exclusion"
	CodeOrphanTransform                 Code = "orphan_transform"
	CodeTooManyStrategies               Code = "too_many_strategies"
	CodeInvalidStrategyIdentifier       Code = "invalid_strategy_identifier"
	CodeSyntaxError                     Code = "syntax_error"
	CodeInvalidDirectiveFile            Code = "invalid_directive_file"
)

// Pos is a source location. The zero value means "unknown".
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position carries at least a line.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// String formats the position as file:line:column.
func (p Pos) String() string {
	if !p.IsValid() {
		return p.File
	}

	s := fmt.Sprintf("%d", p.Line)
	if p.Column > 0 {
		s += fmt.Sprintf(":%d", p.Column)
	}

	if p.File != "" {
		s = p.File + ":" + s
	}

	return s
}

// Diagnostics holds all diagnostic information from a multi-type run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Message is the human-readable description.
	Message string
	// TypePair identifies the annotated type (and destination, if any).
	TypePair string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Pos is the location of the originating directive.
	Pos Pos
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticError DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticInfo
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// New builds an error diagnostic.
func New(code Code, pos Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}

// WithType returns a copy of d attributed to the given type.
func (d *Diagnostic) WithType(typePair string) *Diagnostic {
	c := *d
	c.TypePair = typePair

	return &c
}

// WithField returns a copy of d attributed to the given field.
func (d *Diagnostic) WithField(field string) *Diagnostic {
	c := *d
	c.FieldPath = field

	return &c
}

// Error implements error.
func (d *Diagnostic) Error() string {
	return d.String()
}

// Is matches diagnostics by code so errors.Is works with a bare &Diagnostic{Code: ...}.
func (d *Diagnostic) Is(target error) bool {
	var other *Diagnostic
	if !errors.As(target, &other) {
		return false
	}

	return other.Code == d.Code
}

// CodeOf returns the code of the first Diagnostic found in err's chain.
func CodeOf(err error) (Code, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Code, true
	}

	return "", false
}

// Add records d according to its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddErr records err as an error diagnostic. Non-diagnostic errors get an empty code.
func (d *Diagnostics) AddErr(err error, typePair string) {
	var diag *Diagnostic
	if errors.As(err, &diag) {
		c := *diag
		if c.TypePair == "" {
			c.TypePair = typePair
		}

		c.Severity = DiagnosticError
		d.Add(c)

		return
	}

	d.Add(Diagnostic{
		Severity: DiagnosticError,
		Message:  err.Error(),
		TypePair: typePair,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, message, typePair, fieldPath string) {
	d.Add(Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      code,
		Message:   message,
		TypePair:  typePair,
		FieldPath: fieldPath,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() || d.Pos.File != "" {
		prefix = append(prefix, d.Pos.String())
	}

	if d.TypePair != "" {
		prefix = append(prefix, "["+d.TypePair+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
