// Package xpath implements XPathHandle: a compiled XPath expression paired
// with its namespace bindings and the value-extraction rule implied by its
// trailing "/@NAME/text()" or "/text()" suffix (spec.md §3, §4.1).
package xpath

import (
	"regexp"
	"strings"

	antxpath "github.com/antchfx/xpath"

	"github.com/xreflint/xreflint/doc"
)

// Kind is the value-extraction rule a Handle carries, derived once at
// construction time from its expression's trailing suffix (Design Notes:
// "encode value-kind as a sum type derived at handle-construction, so
// evaluation is a match rather than repeated regex").
type Kind int

const (
	// KindOpaque handles are selection-only; value_of always returns ⊥.
	KindOpaque Kind = iota
	// KindAttribute handles extract a named attribute's trimmed text.
	KindAttribute
	// KindText handles extract a node's own trimmed text content.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindText:
		return "text"
	default:
		return "opaque"
	}
}

var (
	attributeSuffix = regexp.MustCompile(`(^|/)@([A-Za-z_][-\w.:]*)/text\(\)$`)
	textSuffix      = regexp.MustCompile(`(^|/)text\(\)$`)
)

// Handle is spec.md's XPathHandle: immutable once built.
type Handle struct {
	expression    string
	withoutSuffix string
	namespaces    map[string]string
	kind          Kind
	attrName      string
	compiled      *antxpath.Expr
}

// New builds a Handle, compiling its selection expression (everything
// before the value suffix) against namespaces. Compilation happens once
// here, not per evaluation (Design Notes: "resolve all XPathHandles once
// during schema compile... to surface malformed expressions early").
func New(expression string, namespaces map[string]string) (Handle, error) {
	withoutSuffix, kind, attrName := splitSuffix(expression)

	ns := make(map[string]string, len(namespaces))
	for k, v := range namespaces {
		ns[k] = v
	}

	expr, err := compile(withoutSuffix, ns)
	if err != nil {
		return Handle{}, err
	}

	return Handle{
		expression:    expression,
		withoutSuffix: withoutSuffix,
		namespaces:    ns,
		kind:          kind,
		attrName:      attrName,
		compiled:      expr,
	}, nil
}

// splitSuffix strips a trailing "/@NAME/text()" or "/text()" suffix. The
// suffix may also appear with no leading "/" when it is the entire
// expression (e.g. an Assertion's child expression "@id/text()", evaluated
// relative to the already-selected source node) — in that case the
// remaining selector is "." (self), not the empty string.
func splitSuffix(expression string) (withoutSuffix string, kind Kind, attrName string) {
	if loc := attributeSuffix.FindStringSubmatchIndex(expression); loc != nil {
		return selfIfEmpty(expression[:loc[0]]), KindAttribute, expression[loc[4]:loc[5]]
	}
	if loc := textSuffix.FindStringSubmatchIndex(expression); loc != nil {
		return selfIfEmpty(expression[:loc[0]]), KindText, ""
	}
	return expression, KindOpaque, ""
}

func selfIfEmpty(withoutSuffix string) string {
	if withoutSuffix == "" {
		return "."
	}
	return withoutSuffix
}

// Kind returns the handle's value-extraction rule.
func (h Handle) Kind() Kind { return h.kind }

// WithoutValueSuffix returns the expression used for node selection, with
// any trailing "/@NAME/text()" or "/text()" stripped.
func (h Handle) WithoutValueSuffix() string { return h.withoutSuffix }

// Display returns the full original expression, used verbatim in
// diagnostics.
func (h Handle) Display() string { return h.expression }

// Select evaluates the handle's selection expression against node, in
// document order. A Handle produced only for display (via ComposeDisplay) is
// never selected against; Select panics if called on one, since that would
// indicate an engine bug, not a data error.
func (h Handle) Select(node *doc.Node) []*doc.Node {
	if h.compiled == nil {
		panic("xpath: Select called on a display-only composed Handle")
	}
	return selectNodes(h.compiled, node)
}

// ValueOf extracts node's comparable string value per the handle's Kind,
// or reports ⊥ (ok=false) per spec.md §4.1.
func (h Handle) ValueOf(node *doc.Node) (value string, ok bool) {
	switch h.kind {
	case KindAttribute:
		raw, present := node.Attribute(h.attrName)
		if !present {
			return "", false
		}
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return "", false
		}
		return trimmed, true
	case KindText:
		children := node.Children()
		if len(children) == 0 {
			return "", false
		}
		var sb strings.Builder
		for _, c := range children {
			if !c.IsText() {
				return "", false
			}
			sb.WriteString(c.Text())
		}
		trimmed := strings.TrimSpace(sb.String())
		if trimmed == "" {
			return "", false
		}
		return trimmed, true
	default:
		return "", false
	}
}

// mergedNamespaces unions h's and other's namespace bindings, other
// winning on collision (spec.md §3: "Composition A / B... namespace map
// is the union (B's bindings win on collision)").
func (h Handle) mergedNamespaces(other Handle) map[string]string {
	ns := make(map[string]string, len(h.namespaces)+len(other.namespaces))
	for k, v := range h.namespaces {
		ns[k] = v
	}
	for k, v := range other.namespaces {
		ns[k] = v
	}
	return ns
}

// Compose yields a handle whose expression is
// h.WithoutValueSuffix() + "/" + other.expression, recompiled so the
// result remains selectable (needed when composing a Scope's context into
// its parent's prefix, which is then selected against to find rule-anchor
// nodes — spec.md §4.3).
func (h Handle) Compose(other Handle) (Handle, error) {
	withoutSuffix := h.withoutSuffix + "/" + other.withoutSuffix
	expr, err := compile(withoutSuffix, h.mergedNamespaces(other))
	if err != nil {
		return Handle{}, err
	}

	return Handle{
		expression:    h.withoutSuffix + "/" + other.expression,
		withoutSuffix: withoutSuffix,
		namespaces:    h.mergedNamespaces(other),
		kind:          other.kind,
		attrName:      other.attrName,
		compiled:      expr,
	}, nil
}

// ComposeDisplay builds the same composed expression as Compose but only
// for labelling a diagnostic (spec.md §4.2's qualify): it never needs to
// be selected against, so it skips recompilation entirely and can never
// fail.
func (h Handle) ComposeDisplay(other Handle) Handle {
	return Handle{
		expression:    h.withoutSuffix + "/" + other.expression,
		withoutSuffix: h.withoutSuffix + "/" + other.withoutSuffix,
		namespaces:    h.mergedNamespaces(other),
		kind:          other.kind,
		attrName:      other.attrName,
		compiled:      nil,
	}
}
