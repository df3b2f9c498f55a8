package inflate

import (
	"log/slog"

	"github.com/ardnew/inflate/node"
)

// Reserved node values.
const (
	// DefsKeyword introduces a block of template and variable declarations.
	DefsKeyword = "defs"
	// RefMarker holds the name of a variable to substitute, as in @{name}.
	RefMarker = "@"
)

// Merge combines a template body with the content given at a use site.
//
// base is only read; every base node that reaches the result is a copy.
// overrides is consumed and may be modified in place.
//
// Bare values of base, variable references included, are placed ahead of
// the result in their original order. Each property of base with a body is merged with the first
// same-named property of overrides: a missing override contributes a copy of
// the base property after the overrides, an override without a body deletes
// it, and an override with a body has the base property's body merged into
// its own. Within property bodies, a base chain holding only childless values
// is replaced entirely by an override that holds only values too.
//
// vars names the formal variables of the template being applied.
func Merge(base, overrides *node.Node, vars []string) (*node.Node, error) {
	return merge(base, overrides, vars, false)
}

func merge(base, overrides *node.Node, vars []string, nested bool) (*node.Node, error) {
	if overrides == nil {
		return base.CloneChain(), nil
	}

	if base == nil {
		return overrides, nil
	}

	if nested && isValue(base) && isValue(overrides) {
		if err := checkLeaves(base); err != nil {
			return nil, err
		}

		return overrides, nil
	}

	var (
		pending  []*node.Node
		defaults []*node.Node
		deleted  = map[*node.Node]bool{}
	)

	for src := range base.All() {
		if !src.IsProperty() {
			pending = append(pending, src.Clone())

			continue
		}

		if isLeaf(src) {
			if src != base || src.Next() != nil {
				return nil, leafError(src)
			}

			return overrides, nil
		}

		dst := overrides.FindProperty(src.Value())

		switch {
		case dst == nil:
			defaults = append(defaults, src.Clone())

		case !dst.HasChildren():
			deleted[dst] = true

		default:
			merged, err := merge(src.Children(), dst.RemoveChildren(), vars, true)
			if err != nil {
				return nil, err
			}

			dst.SetChildren(merged)
		}
	}

	kept := make([]*node.Node, 0, overrides.Len())

	for c := overrides; c != nil; {
		next := c.ChopNext()
		if !deleted[c] {
			kept = append(kept, c)
		}

		c = next
	}

	return node.NewChain(
		node.NewChain(pending...),
		node.NewChain(kept...),
		node.NewChain(defaults...),
	), nil
}

// isLeaf reports whether n is a property without a body, a single value
// that ends template processing of its chain.
func isLeaf(n *node.Node) bool {
	return n.IsProperty() && !n.HasChildren()
}

// isValue reports whether every node of chain is childless or a variable
// reference.
func isValue(chain *node.Node) bool {
	for c := range chain.All() {
		if c.HasChildren() && c.Value() != RefMarker {
			return false
		}
	}

	return true
}

func checkLeaves(chain *node.Node) error {
	if chain.Next() == nil {
		return nil
	}

	for c := range chain.All() {
		if isLeaf(c) {
			return leafError(c)
		}
	}

	return nil
}

func leafError(n *node.Node) error {
	return ErrMalformedTemplate.With(
		slog.String("reason", "property with several values"),
		slog.String("value", n.Value()),
	)
}
