package schema

import (
	"github.com/xreflint/xreflint/diagnostic"
	"github.com/xreflint/xreflint/doc"
	"github.com/xreflint/xreflint/xpath"
	"github.com/xreflint/xreflint/xreflerr"
)

// Scope is the compiled form of a ScopeSpec (spec.md §3, §4.3).
type Scope struct {
	Context xpath.Handle
	Scopes  []Scope
	Rules   []Rule
}

// validate implements spec.md §4.3's "Scope.validate": cascade a new
// prefix down, recurse into nested scopes first, then run this scope's
// rules against every node the fully-composed prefix selects.
func (s Scope) validate(node *doc.Node, prefix *xpath.Handle) ([]diagnostic.Diagnostic, error) {
	newPrefix, err := composePrefix(prefix, s.Context)
	if err != nil {
		return nil, err
	}

	var diags []diagnostic.Diagnostic

	for _, child := range s.Scopes {
		childDiags, err := child.validate(node, &newPrefix)
		if err != nil {
			return nil, err
		}
		diags = append(diags, childDiags...)
	}

	for _, m := range newPrefix.Select(node) {
		for _, rule := range s.Rules {
			diags = append(diags, rule.validate(m, &newPrefix)...)
		}
	}

	return diags, nil
}

// composePrefix computes prefix_xpath ∘ context (spec.md §4.3), treating
// an absent prefix (top-level Pattern scopes) as the identity. A
// composition that fails to recompile is an engine fault: both operands
// were already valid individually, so this only happens if the two
// expressions can't be legally joined with "/".
func composePrefix(prefix *xpath.Handle, context xpath.Handle) (xpath.Handle, error) {
	if prefix == nil {
		return context, nil
	}
	composed, err := prefix.Compose(context)
	if err != nil {
		return xpath.Handle{}, xreflerr.NewInvalidXPath("scope prefix composition", context.Display(), err)
	}
	return composed, nil
}
