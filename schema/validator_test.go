package schema_test

import (
	"strings"
	"testing"

	"github.com/xreflint/xreflint/diagnostic"
	"github.com/xreflint/xreflint/doc"
	"github.com/xreflint/xreflint/schema"
	"github.com/xreflint/xreflint/xpath"
)

func mustParse(t *testing.T, xml string) *doc.Document {
	t.Helper()
	d, err := doc.Parse(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func lineOf(t *testing.T, d *doc.Document, expression string) int {
	t.Helper()
	h, err := xpath.New(expression, nil)
	if err != nil {
		t.Fatalf("compile %q: %v", expression, err)
	}
	nodes := h.Select(d.Root())
	if len(nodes) != 1 {
		t.Fatalf("%q selected %d nodes, want exactly 1", expression, len(nodes))
	}
	return nodes[0].Line()
}

// S1-S5 exercise Rule/Validator directly, with no Scope prefix, matching
// spec.md §8's scenarios which are phrased purely in terms of "Rule:
// source ..., assert ...".

// S1 — resolvable forward link.
func TestForwardLinkResolves(t *testing.T) {
	d := mustParse(t, `<r xmlns="u"><s id="1"/><t id="1"/></r>`)

	rule, err := schema.CompileRule(schema.RuleSpec{
		Source:     "//s/@id/text()",
		Assertions: []schema.AssertionSpec{{Child: "@id/text()", Target: "//t/@id/text()"}},
		Required:   schema.RequiredForward,
	}, nil)
	if err != nil {
		t.Fatalf("compile rule: %v", err)
	}

	diags := rule.Validate(d.Root())
	if len(diags) != 0 {
		t.Fatalf("got %d diagnostics, want 0: %v", len(diags), diags)
	}
}

// S2 — broken forward link.
func TestForwardLinkBroken(t *testing.T) {
	d := mustParse(t, `<r xmlns="u"><s id="1"/><t id="2"/></r>`)

	rule, err := schema.CompileRule(schema.RuleSpec{
		Source:     "//s/@id/text()",
		Assertions: []schema.AssertionSpec{{Child: "@id/text()", Target: "//t/@id/text()"}},
		Required:   schema.RequiredForward,
	}, nil)
	if err != nil {
		t.Fatalf("compile rule: %v", err)
	}

	diags := rule.Validate(d.Root())

	wantLine := lineOf(t, d, "//s")
	want := diagnostic.NewLinkBroken("//s/@id/text()", "//t/@id/text()", wantLine, "1")

	if len(diags) != 1 || diags[0] != want {
		t.Fatalf("got %v, want [%v]", diags, want)
	}
}

// S3 — missing required child.
func TestRequiredChildMissing(t *testing.T) {
	d := mustParse(t, `<r xmlns="u"><s id="1"/></r>`)

	rule, err := schema.CompileRule(schema.RuleSpec{
		Source:     "//s/@id/text()",
		Assertions: []schema.AssertionSpec{{Child: "child/@ref/text()", Target: "//t/@id/text()"}},
		Required:   schema.RequiredForward,
	}, nil)
	if err != nil {
		t.Fatalf("compile rule: %v", err)
	}

	diags := rule.Validate(d.Root())

	wantLine := lineOf(t, d, "//s")
	want := diagnostic.NewChildMissing("//s/@id/text()", "//s/child/@ref/text()", wantLine, "1")

	if len(diags) != 1 || diags[0] != want {
		t.Fatalf("got %v, want [%v]", diags, want)
	}
}

// S4 — empty text value.
func TestEmptyValueIsMissing(t *testing.T) {
	d := mustParse(t, `<r xmlns="u"><s id="   "/></r>`)

	rule, err := schema.CompileRule(schema.RuleSpec{
		Source:     "//s/@id/text()",
		Assertions: []schema.AssertionSpec{{Child: "@id/text()", Target: "//t/@id/text()"}},
	}, nil)
	if err != nil {
		t.Fatalf("compile rule: %v", err)
	}

	diags := rule.Validate(d.Root())

	wantLine := lineOf(t, d, "//s")
	want := diagnostic.NewValueMissing("//s/@id/text()", wantLine)

	if len(diags) != 1 || diags[0] != want {
		t.Fatalf("got %v, want [%v]", diags, want)
	}
}

// S5 — backward required, forward left unrequired.
func TestBackwardRequiredUnreferencedTarget(t *testing.T) {
	d := mustParse(t, `<r xmlns="u"><s id="A"/><t id="B"/></r>`)

	rule, err := schema.CompileRule(schema.RuleSpec{
		Source:     "//s/@id/text()",
		Assertions: []schema.AssertionSpec{{Child: "@id/text()", Target: "//t/@id/text()"}},
		Direction:  schema.Both,
		Required:   schema.RequiredBackward,
	}, nil)
	if err != nil {
		t.Fatalf("compile rule: %v", err)
	}

	diags := rule.Validate(d.Root())

	wantLine := lineOf(t, d, "//t")
	want := diagnostic.NewLinkBroken("//t/@id/text()", "//s/@id/text()", wantLine, "B")

	if len(diags) != 1 || diags[0] != want {
		t.Fatalf("got %v, want [%v]", diags, want)
	}
}

// S6 — scope prefix appears in the diagnostic's XPaths.
func TestScopePrefixQualifiesDiagnostics(t *testing.T) {
	d := mustParse(t, `<r xmlns="u"><p><s id="1"/><t id="2"/></p></r>`)

	sch, err := schema.NewBuilder("s6").
		Pattern("root", "//r", func(p *schema.PatternBuilder) {
			p.Scope("//p", func(s *schema.ScopeBuilder) {
				s.Rule("//s/@id/text()", schema.RuleOptions{Required: schema.RequiredForward}, func(r *schema.RuleBuilder) {
					r.Assert("@id/text()", "//t/@id/text()")
				})
			})
		}).
		Build()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	diags, err := sch.Validate(d)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}

	got := diags[0]
	if !strings.HasPrefix(got.XPath, "//p/") {
		t.Errorf("source xpath %q does not begin with //p/", got.XPath)
	}
	if !strings.HasPrefix(got.ChildXPath, "//p/") {
		t.Errorf("target xpath %q does not begin with //p/", got.ChildXPath)
	}
}

// Invariant 1: determinism across repeated calls on the same tree+document.
func TestValidateIsDeterministic(t *testing.T) {
	d := mustParse(t, `<r xmlns="u"><s id="1"/><t id="2"/><s id="3"/></r>`)

	sch, err := schema.NewBuilder("det").
		Pattern("root", "//r", func(p *schema.PatternBuilder) {
			p.Scope("//r", func(s *schema.ScopeBuilder) {
				s.Rule("//s/@id/text()", schema.RuleOptions{Required: schema.RequiredForward}, func(r *schema.RuleBuilder) {
					r.Assert("@id/text()", "//t/@id/text()")
				})
			})
		}).
		Build()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	first, err := sch.Validate(d)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	second, err := sch.Validate(d)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("diagnostic counts differ across calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("diagnostic %d differs across calls: %v vs %v", i, first[i], second[i])
		}
	}
}

// Invariant 2: a document satisfying every rule produces no diagnostics.
func TestDiagnosticFreeWhenSatisfied(t *testing.T) {
	d := mustParse(t, `<r xmlns="u"><s id="1"/><s id="2"/><t id="1"/><t id="2"/></r>`)

	sch, err := schema.NewBuilder("valid").
		Pattern("root", "//r", func(p *schema.PatternBuilder) {
			p.Scope("//r", func(s *schema.ScopeBuilder) {
				s.Rule("//s/@id/text()", schema.RuleOptions{Direction: schema.Both, Required: schema.RequiredBoth}, func(r *schema.RuleBuilder) {
					r.Assert("@id/text()", "//t/@id/text()")
				})
			})
		}).
		Build()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	diags, err := sch.Validate(d)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("got %d diagnostics, want 0: %v", len(diags), diags)
	}
}

func TestValidateRejectsNilDocument(t *testing.T) {
	sch, err := schema.NewBuilder("nil-doc").Build()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	if _, err := sch.Validate(nil); err == nil {
		t.Fatal("want error for nil document, got nil")
	}
}

func TestCompileRejectsMalformedXPath(t *testing.T) {
	_, err := schema.NewBuilder("bad").
		Pattern("root", "//r", func(p *schema.PatternBuilder) {
			p.Scope("//r", func(s *schema.ScopeBuilder) {
				s.Rule("//s[@id", schema.RuleOptions{}, nil)
			})
		}).
		Build()
	if err == nil {
		t.Fatal("want error for malformed xpath, got nil")
	}
}
