// Package xreflerr implements the engine-fault channel of spec.md §7: the
// disjoint failure path for malformed XPath, undeclared namespace
// prefixes, and other conditions that abort an entire validation call
// rather than surfacing as a Diagnostic finding.
//
// Shaped after the teacher's errors.ValidationError builder (same
// with-suggestion, with-cause idiom), narrowed to engine faults only.
package xreflerr

import "fmt"

// Fault is the error type Schema.Validate returns when validation cannot
// proceed at all. A non-nil Fault means no diagnostics were collected for
// that call, per spec.md §7 ("findings collected so far are discarded").
type Fault struct {
	// Code identifies the fault kind, e.g. "INVALID_XPATH".
	Code string
	// Message is the primary fault description.
	Message string
	// Where names the schema location the fault occurred in (a rule
	// source, an assertion child/target, a scope context, ...).
	Where string
	// Suggestions offers short, actionable fixes.
	Suggestions []string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	msg := f.Message
	if f.Where != "" {
		msg = fmt.Sprintf("%s (in %s)", msg, f.Where)
	}
	if f.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, f.Cause.Error())
	}
	return msg
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// NewInvalidXPath builds a Fault for an XPath expression that failed to
// compile.
func NewInvalidXPath(where, expression string, cause error) *Fault {
	return &Fault{
		Code:    "INVALID_XPATH",
		Message: fmt.Sprintf("invalid XPath expression %q", expression),
		Where:   where,
		Cause:   cause,
		Suggestions: []string{
			"check the expression compiles under XPath 1.0",
			"verify every namespace prefix used in the expression is declared on the schema",
		},
	}
}

// NewUndeclaredNamespace builds a Fault for a namespace prefix used in an
// expression but not declared on the Schema.
func NewUndeclaredNamespace(where, prefix string) *Fault {
	return &Fault{
		Code:    "UNDECLARED_NAMESPACE",
		Message: fmt.Sprintf("namespace prefix %q is not declared on the schema", prefix),
		Where:   where,
		Suggestions: []string{
			fmt.Sprintf("add ns(%q, \"<uri>\") to the schema before referencing %s:*", prefix, prefix),
		},
	}
}

// NewOpaqueValueExpression builds a Fault for a Rule source/child/target
// expression that has no "/@NAME/text()" or "/text()" value suffix, and so
// can never produce a comparable string (spec.md §3: "A Rule's source, a
// Rule's assertion child, and a Rule's assertion target MUST have
// value-kind attribute or text").
func NewOpaqueValueExpression(where, expression string) *Fault {
	return &Fault{
		Code:    "OPAQUE_VALUE_EXPRESSION",
		Message: fmt.Sprintf("expression %q has no value suffix", expression),
		Where:   where,
		Suggestions: []string{
			`append "/@NAME/text()" to read a named attribute`,
			`append "/text()" to read element text`,
		},
	}
}

// NewNilDocument builds a Fault for a nil document passed to Validate.
func NewNilDocument() *Fault {
	return &Fault{
		Code:    "NIL_DOCUMENT",
		Message: "document is nil",
	}
}

// NewSchemaLoad builds a Fault for a schema source (YAML, etc.) that could
// not be decoded at all, as distinct from one that decoded but failed to
// compile.
func NewSchemaLoad(where string, cause error) *Fault {
	return &Fault{
		Code:    "SCHEMA_LOAD",
		Message: "failed to load schema",
		Where:   where,
		Cause:   cause,
		Suggestions: []string{
			"check the schema source is valid YAML",
			"check every pattern/scope/rule has its required fields",
		},
	}
}
