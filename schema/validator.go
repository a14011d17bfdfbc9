package schema

import (
	"github.com/xreflint/xreflint/diagnostic"
	"github.com/xreflint/xreflint/doc"
	"github.com/xreflint/xreflint/xpath"
)

// validator is spec.md §4.2's Validator: stateless across calls, built
// fresh by Rule.validate for every (node, prefix) evaluation.
type validator struct {
	source     xpath.Handle
	assertions []Assertion
	direction  Direction
	required   Required
}

// qualify implements spec.md §4.2's "qualify(h) = prefix ∘ h when prefix
// is present, else h, used exclusively in diagnostic construction."
func qualify(prefix *xpath.Handle, h xpath.Handle) xpath.Handle {
	if prefix == nil {
		return h
	}
	return prefix.ComposeDisplay(h)
}

// validate runs the forward and/or backward pass against contextNode,
// following spec.md §4.2's numbered algorithm except that the forward
// pass gates its per-child LinkBroken on required and has no separate
// aggregate LinkBroken (see the comment in forward). The backward pass's
// nested re-selection of source and child nodes is kept literal rather
// than folded into a single pass, per the Open Question in spec.md §9:
// "A reimplementation MAY fold this... provided evaluation order is
// preserved" — the literal form is the one evaluation order is easiest to
// verify against.
func (v validator) validate(contextNode *doc.Node, prefix *xpath.Handle) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic

	if v.direction == Forward || v.direction == Both {
		diags = append(diags, v.forward(contextNode, prefix)...)
	}
	if v.direction == Backward || v.direction == Both {
		diags = append(diags, v.backward(contextNode, prefix)...)
	}
	return diags
}

func (v validator) forward(contextNode *doc.Node, prefix *xpath.Handle) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic

	for _, sn := range v.source.Select(contextNode) {
		sv, ok := v.source.ValueOf(sn)
		if !ok {
			diags = append(diags, diagnostic.NewValueMissing(qualify(prefix, v.source).Display(), sn.Line()))
			continue
		}

		isParent := false

		for _, a := range v.assertions {
			sourceChild := v.source.ComposeDisplay(a.Child)

			for _, cn := range a.Child.Select(sn) {
				cv, ok := a.Child.ValueOf(cn)
				if !ok {
					diags = append(diags, diagnostic.NewValueMissing(qualify(prefix, sourceChild).Display(), cn.Line()))
					continue
				}

				isParent = true
				matched := false
				for _, tn := range a.Target.Select(contextNode) {
					tv, ok := a.Target.ValueOf(tn)
					if !ok {
						diags = append(diags, diagnostic.NewValueMissing(qualify(prefix, a.Target).Display(), tn.Line()))
						continue
					}
					if tv == cv {
						matched = true
					}
				}

				// Per-cn LinkBroken is gated on required, same as the
				// ChildMissing check below: S5 runs Direction: Both with
				// Required: RequiredBackward and expects the forward pass to
				// contribute nothing for its unresolved source value,
				// leaving the single backward LinkBroken as the only
				// finding. There is no separate required-gated aggregate
				// LinkBroken here: that would duplicate this one whenever
				// source and child read the same node (exactly spec.md §8
				// S2's shape, still required=forward and still gated here).
				if !matched && (v.required == RequiredForward || v.required == RequiredBoth) {
					diags = append(diags, diagnostic.NewLinkBroken(
						qualify(prefix, sourceChild).Display(),
						qualify(prefix, a.Target).Display(),
						cn.Line(), cv,
					))
				}
			}
		}

		if !isParent && (v.required == RequiredForward || v.required == RequiredBoth) {
			for _, a := range v.assertions {
				diags = append(diags, diagnostic.NewChildMissing(
					qualify(prefix, v.source).Display(),
					qualify(prefix, v.source.ComposeDisplay(a.Child)).Display(),
					sn.Line(), sv,
				))
			}
		}
	}

	return diags
}

func (v validator) backward(contextNode *doc.Node, prefix *xpath.Handle) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic

	for _, a := range v.assertions {
		for _, tn := range a.Target.Select(contextNode) {
			tv, ok := a.Target.ValueOf(tn)
			if !ok {
				diags = append(diags, diagnostic.NewValueMissing(qualify(prefix, a.Target).Display(), tn.Line()))
				continue
			}

			any := false
			for _, b := range v.assertions {
				for _, sn := range v.source.Select(contextNode) {
					if _, ok := v.source.ValueOf(sn); !ok {
						diags = append(diags, diagnostic.NewValueMissing(qualify(prefix, v.source).Display(), sn.Line()))
						continue
					}

					for _, cn := range b.Child.Select(sn) {
						cv, ok := b.Child.ValueOf(cn)
						if !ok {
							diags = append(diags, diagnostic.NewValueMissing(
								qualify(prefix, v.source.ComposeDisplay(b.Child)).Display(), cn.Line(),
							))
							continue
						}
						if cv == tv {
							any = true
						}
					}
				}
			}

			if !any && (v.required == RequiredBackward || v.required == RequiredBoth) {
				for _, b := range v.assertions {
					diags = append(diags, diagnostic.NewLinkBroken(
						qualify(prefix, a.Target).Display(),
						qualify(prefix, v.source.ComposeDisplay(b.Child)).Display(),
						tn.Line(), tv,
					))
				}
			}
		}
	}

	return diags
}
