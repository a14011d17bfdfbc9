// Package schema holds the Schema/Pattern/Scope/Rule/Assertion object model
// (spec.md §3, §4.3) and the bidirectional Validator that walks it
// (spec.md §4.2).
//
// Two shapes of every tree node exist side by side: a "spec" shape
// (SchemaSpec, PatternSpec, ScopeSpec, RuleSpec, AssertionSpec) built by
// the fluent Builder or decoded straight from YAML, and a compiled shape
// (Schema, Pattern, Scope, Rule, Assertion) whose XPathHandles are already
// resolved. Compile turns one into the other, matching Design Notes:
// "resolve all XPathHandles once during schema compile... to surface
// malformed expressions early."
package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Direction controls which passes a Rule's Validator runs (spec.md §3).
type Direction int

const (
	// Forward is the default: every source value must resolve to a target.
	Forward Direction = iota
	Backward
	Both
)

func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Both:
		return "both"
	default:
		return "forward"
	}
}

func parseDirection(s string) (Direction, error) {
	switch s {
	case "", "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	case "both":
		return Both, nil
	default:
		return 0, fmt.Errorf("unknown direction %q: want forward, backward, or both", s)
	}
}

// MarshalYAML renders a Direction as its lowercase name.
func (d Direction) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts "forward", "backward", or "both".
func (d *Direction) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := parseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Required controls which directions escalate "no link found" from
// silent to a diagnostic (spec.md §3, GLOSSARY "Required").
type Required int

const (
	// RequiredNone is the default: neither pass reports LinkBroken or
	// ChildMissing; only ValueMissing findings are reported.
	RequiredNone Required = iota
	RequiredForward
	RequiredBackward
	RequiredBoth
)

func (r Required) String() string {
	switch r {
	case RequiredForward:
		return "forward"
	case RequiredBackward:
		return "backward"
	case RequiredBoth:
		return "both"
	default:
		return "none"
	}
}

func parseRequired(s string) (Required, error) {
	switch s {
	case "", "none":
		return RequiredNone, nil
	case "forward":
		return RequiredForward, nil
	case "backward":
		return RequiredBackward, nil
	case "both":
		return RequiredBoth, nil
	default:
		return 0, fmt.Errorf("unknown required mode %q: want none, forward, backward, or both", s)
	}
}

// MarshalYAML renders a Required as its lowercase name.
func (r Required) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// UnmarshalYAML accepts "none", "forward", "backward", or "both".
func (r *Required) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := parseRequired(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// AssertionSpec is one uncompiled (child, target) pair under a RuleSpec.
type AssertionSpec struct {
	Child  string `yaml:"child"`
	Target string `yaml:"target"`
}

// RuleSpec is the uncompiled form of Rule (spec.md §3).
type RuleSpec struct {
	Source     string          `yaml:"source"`
	Assertions []AssertionSpec `yaml:"assert"`
	Direction  Direction       `yaml:"direction"`
	Required   Required        `yaml:"required"`
}

// ScopeSpec is the uncompiled form of Scope (spec.md §3).
type ScopeSpec struct {
	Context string      `yaml:"context"`
	Scopes  []ScopeSpec `yaml:"scopes,omitempty"`
	Rules   []RuleSpec  `yaml:"rules,omitempty"`
}

// PatternSpec is the uncompiled form of Pattern (spec.md §3).
type PatternSpec struct {
	Title   string      `yaml:"title"`
	Context string      `yaml:"context"`
	Scopes  []ScopeSpec `yaml:"scopes"`
}

// NamespaceSpec is one {prefix, uri} binding (spec.md §3).
type NamespaceSpec struct {
	Prefix string `yaml:"prefix"`
	URI    string `yaml:"uri"`
}

// SchemaSpec is the uncompiled form of Schema (spec.md §3): what the
// Builder accumulates and what LoadFromYAML decodes into.
type SchemaSpec struct {
	Title      string          `yaml:"title"`
	Namespaces []NamespaceSpec `yaml:"namespaces"`
	Patterns   []PatternSpec   `yaml:"patterns"`
}
