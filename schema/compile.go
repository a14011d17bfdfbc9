package schema

import (
	"fmt"

	"github.com/xreflint/xreflint/xpath"
	"github.com/xreflint/xreflint/xreflerr"
)

// Compile resolves every XPathHandle in spec against its namespace
// bindings, producing an immutable Schema or the first xreflerr.Fault
// encountered (spec.md §7: malformed XPath is an engine fault, not a
// Diagnostic).
func Compile(spec SchemaSpec) (Schema, error) {
	ns := make(map[string]string, len(spec.Namespaces))
	for _, n := range spec.Namespaces {
		ns[n.Prefix] = n.URI
	}

	patterns := make([]Pattern, 0, len(spec.Patterns))
	for _, ps := range spec.Patterns {
		p, err := compilePattern(ps, ns)
		if err != nil {
			return Schema{}, err
		}
		patterns = append(patterns, p)
	}

	return Schema{Title: spec.Title, Namespaces: ns, Patterns: patterns}, nil
}

func compilePattern(ps PatternSpec, ns map[string]string) (Pattern, error) {
	where := fmt.Sprintf("pattern %q", ps.Title)

	ctx, err := xpath.New(ps.Context, ns)
	if err != nil {
		return Pattern{}, xreflerr.NewInvalidXPath(where+" context", ps.Context, err)
	}

	scopes := make([]Scope, 0, len(ps.Scopes))
	for _, ss := range ps.Scopes {
		sc, err := compileScope(ss, ns, where)
		if err != nil {
			return Pattern{}, err
		}
		scopes = append(scopes, sc)
	}

	return Pattern{Title: ps.Title, Context: ctx, Scopes: scopes}, nil
}

func compileScope(ss ScopeSpec, ns map[string]string, parent string) (Scope, error) {
	where := fmt.Sprintf("%s > scope %q", parent, ss.Context)

	ctx, err := xpath.New(ss.Context, ns)
	if err != nil {
		return Scope{}, xreflerr.NewInvalidXPath(where, ss.Context, err)
	}

	scopes := make([]Scope, 0, len(ss.Scopes))
	for _, child := range ss.Scopes {
		sc, err := compileScope(child, ns, where)
		if err != nil {
			return Scope{}, err
		}
		scopes = append(scopes, sc)
	}

	rules := make([]Rule, 0, len(ss.Rules))
	for _, rs := range ss.Rules {
		r, err := compileRule(rs, ns, where)
		if err != nil {
			return Scope{}, err
		}
		rules = append(rules, r)
	}

	return Scope{Context: ctx, Scopes: scopes, Rules: rules}, nil
}

func compileRule(rs RuleSpec, ns map[string]string, parent string) (Rule, error) {
	where := fmt.Sprintf("%s > rule %q", parent, rs.Source)

	source, err := xpath.New(rs.Source, ns)
	if err != nil {
		return Rule{}, xreflerr.NewInvalidXPath(where, rs.Source, err)
	}
	if source.Kind() == xpath.KindOpaque {
		return Rule{}, xreflerr.NewOpaqueValueExpression(where, rs.Source)
	}

	assertions := make([]Assertion, 0, len(rs.Assertions))
	for _, as := range rs.Assertions {
		child, err := xpath.New(as.Child, ns)
		if err != nil {
			return Rule{}, xreflerr.NewInvalidXPath(where+" assertion child", as.Child, err)
		}
		if child.Kind() == xpath.KindOpaque {
			return Rule{}, xreflerr.NewOpaqueValueExpression(where+" assertion child", as.Child)
		}
		target, err := xpath.New(as.Target, ns)
		if err != nil {
			return Rule{}, xreflerr.NewInvalidXPath(where+" assertion target", as.Target, err)
		}
		if target.Kind() == xpath.KindOpaque {
			return Rule{}, xreflerr.NewOpaqueValueExpression(where+" assertion target", as.Target)
		}
		assertions = append(assertions, Assertion{Child: child, Target: target})
	}

	return Rule{
		Source:     source,
		Assertions: assertions,
		Direction:  rs.Direction,
		Required:   rs.Required,
	}, nil
}
