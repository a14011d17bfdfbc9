package schema

// Builder accumulates a SchemaSpec through chained calls and nested
// closures, the Go shape of spec.md §6's
// "schema(title) { ns(prefix, uri)*; pattern(title, context) { scope_block }* }".
// It builds a plain spec tree (Design Notes: "represent the schema as
// plain immutable records... built by a fluent builder"); Build compiles
// that tree once, surfacing any malformed XPath as an error instead of a
// panic.
type Builder struct {
	spec SchemaSpec
}

// NewBuilder starts a schema named title.
func NewBuilder(title string) *Builder {
	return &Builder{spec: SchemaSpec{Title: title}}
}

// NS declares a namespace prefix binding used when compiling every XPath
// under this schema.
func (b *Builder) NS(prefix, uri string) *Builder {
	b.spec.Namespaces = append(b.spec.Namespaces, NamespaceSpec{Prefix: prefix, URI: uri})
	return b
}

// Pattern adds a top-level Pattern with context as its root context
// XPath. fn populates the pattern's scopes.
func (b *Builder) Pattern(title, context string, fn func(*PatternBuilder)) *Builder {
	pb := &PatternBuilder{}
	if fn != nil {
		fn(pb)
	}
	b.spec.Patterns = append(b.spec.Patterns, PatternSpec{
		Title:   title,
		Context: context,
		Scopes:  pb.scopes,
	})
	return b
}

// Build compiles the accumulated spec into an immutable Schema.
func (b *Builder) Build() (Schema, error) {
	return Compile(b.spec)
}

// PatternBuilder accumulates a Pattern's scope_block sequence.
type PatternBuilder struct {
	scopes []ScopeSpec
}

// Scope adds a nested scope whose context is selected relative to the
// pattern's context node.
func (p *PatternBuilder) Scope(context string, fn func(*ScopeBuilder)) *PatternBuilder {
	sb := &ScopeBuilder{}
	if fn != nil {
		fn(sb)
	}
	p.scopes = append(p.scopes, ScopeSpec{Context: context, Scopes: sb.scopes, Rules: sb.rules})
	return p
}

// ScopeBuilder accumulates a scope's "(scope_block | rule_block)*" body.
type ScopeBuilder struct {
	scopes []ScopeSpec
	rules  []RuleSpec
}

// Scope adds a nested child scope.
func (s *ScopeBuilder) Scope(context string, fn func(*ScopeBuilder)) *ScopeBuilder {
	child := &ScopeBuilder{}
	if fn != nil {
		fn(child)
	}
	s.scopes = append(s.scopes, ScopeSpec{Context: context, Scopes: child.scopes, Rules: child.rules})
	return s
}

// RuleOptions carries a Rule's optional direction/required-ness, both
// defaulting to their spec.md §3 zero values (forward, none) when omitted.
type RuleOptions struct {
	Direction Direction
	Required  Required
}

// Rule adds a link rule anchored at source. opts may be the zero value to
// take the defaults. fn declares the rule's assertions.
func (s *ScopeBuilder) Rule(source string, opts RuleOptions, fn func(*RuleBuilder)) *ScopeBuilder {
	rb := &RuleBuilder{}
	if fn != nil {
		fn(rb)
	}
	s.rules = append(s.rules, RuleSpec{
		Source:     source,
		Assertions: rb.assertions,
		Direction:  opts.Direction,
		Required:   opts.Required,
	})
	return s
}

// RuleBuilder accumulates a rule's ordered assert(child, target) calls.
type RuleBuilder struct {
	assertions []AssertionSpec
}

// Assert adds one (child, target) assertion, in the order declared.
func (r *RuleBuilder) Assert(child, target string) *RuleBuilder {
	r.assertions = append(r.assertions, AssertionSpec{Child: child, Target: target})
	return r
}
