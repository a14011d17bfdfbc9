package schema

import (
	"github.com/xreflint/xreflint/diagnostic"
	"github.com/xreflint/xreflint/doc"
	"github.com/xreflint/xreflint/xpath"
	"github.com/xreflint/xreflint/xreflerr"
)

// Pattern is the compiled form of a PatternSpec (spec.md §3, §4.3).
type Pattern struct {
	Title   string
	Context xpath.Handle
	Scopes  []Scope
}

// validate implements spec.md §4.3's "Pattern.validate": evaluate every
// nested Scope against each context node with no prefix.
func (p Pattern) validate(document *doc.Document) ([]diagnostic.Diagnostic, error) {
	var diags []diagnostic.Diagnostic

	for _, ctx := range p.Context.Select(document.Root()) {
		for _, sc := range p.Scopes {
			scopeDiags, err := sc.validate(ctx, nil)
			if err != nil {
				return nil, err
			}
			diags = append(diags, scopeDiags...)
		}
	}

	return diags, nil
}

// Schema is the compiled, immutable root of the link-rule tree (spec.md
// §3). It is safe to share across goroutines, each validating its own
// Document concurrently (spec.md §5).
type Schema struct {
	Title      string
	Namespaces map[string]string
	Patterns   []Pattern
}

// Validate is spec.md §6's entry point: run every Pattern in declaration
// order and concatenate diagnostics. The schema's namespaces were already
// flattened and bound into every handle by Compile. It returns a non-nil error only for an engine fault
// (spec.md §7); the returned diagnostic slice is nil in that case, never
// partially filled.
func (s Schema) Validate(document *doc.Document) ([]diagnostic.Diagnostic, error) {
	if document == nil {
		return nil, xreflerr.NewNilDocument()
	}

	var diags []diagnostic.Diagnostic
	for _, p := range s.Patterns {
		patternDiags, err := p.validate(document)
		if err != nil {
			return nil, err
		}
		diags = append(diags, patternDiags...)
	}

	return diags, nil
}
