package schema

import (
	"github.com/xreflint/xreflint/diagnostic"
	"github.com/xreflint/xreflint/doc"
	"github.com/xreflint/xreflint/xpath"
)

// Assertion is one compiled (child, target) pair (spec.md §3).
type Assertion struct {
	Child  xpath.Handle
	Target xpath.Handle
}

// Rule is the compiled form of a RuleSpec (spec.md §3, §4.3).
type Rule struct {
	Source     xpath.Handle
	Assertions []Assertion
	Direction  Direction
	Required   Required
}

// validate constructs a Validator for the rule and runs it against node,
// qualifying diagnostics with prefix (spec.md §4.3 "Rule.validate").
func (r Rule) validate(node *doc.Node, prefix *xpath.Handle) []diagnostic.Diagnostic {
	v := validator{
		source:     r.Source,
		assertions: r.Assertions,
		direction:  r.Direction,
		required:   r.Required,
	}
	return v.validate(node, prefix)
}

// Validate runs the rule against node with no scope prefix, the public
// shape of a Rule compiled and evaluated on its own rather than reached
// through a Schema/Pattern/Scope tree.
func (r Rule) Validate(node *doc.Node) []diagnostic.Diagnostic {
	return r.validate(node, nil)
}

// CompileRule resolves a standalone RuleSpec against namespaces, without
// requiring a surrounding Schema/Pattern/Scope.
func CompileRule(spec RuleSpec, namespaces map[string]string) (Rule, error) {
	return compileRule(spec, namespaces, "rule")
}
