package xpath

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	antxpath "github.com/antchfx/xpath"

	"github.com/xreflint/xreflint/doc"
)

// compile binds expression to namespaces using antchfx/xpath's
// namespace-bound compiler, rather than any namespaces the document itself
// declares. This is what lets a Schema's ns() bindings stay authoritative
// regardless of the prefixes a particular document happens to use (Design
// Notes: "an XML library supporting XPath 1.0 with namespace bindings").
func compile(expression string, namespaces map[string]string) (*antxpath.Expr, error) {
	expr, err := antxpath.CompileWithNS(expression, namespaces)
	if err != nil {
		return nil, fmt.Errorf("compile xpath %q: %w", expression, err)
	}
	return expr, nil
}

// selectNodes evaluates a pre-compiled, namespace-bound expression against
// node, converting the antchfx iterator back into doc.Nodes in document
// order.
func selectNodes(expr *antxpath.Expr, node *doc.Node) []*doc.Node {
	nav := xmlquery.CreateXPathNavigator(node.Raw())
	iter := expr.Select(nav)

	var out []*doc.Node
	for iter.MoveNext() {
		current := iter.Current().(*xmlquery.NodeNavigator).Current()
		out = append(out, doc.WrapNode(current))
	}
	return out
}
