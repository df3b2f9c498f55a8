package inflate

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/inflate/node"
)

// FindVariable returns the value bound to name in the innermost variable
// frame that defines it. A miss is traced and reported as false.
func (in *Inflater) FindVariable(name string) (*node.Node, bool) {
	v, ok := in.variables.find(name)
	if !ok {
		in.logger.Trace("variable not found", slog.String("name", name))
	}

	return v, ok
}

// Substitute replaces each @{name} reference in chain with a copy of the
// bound value. Substituted content is not searched again. References to
// unbound names are left in place.
func (in *Inflater) Substitute(chain *node.Node) error {
	return substitute(chain, in.FindVariable)
}

func substitute(chain *node.Node, find func(string) (*node.Node, bool)) error {
	for n := chain; n != nil; n = n.Next() {
		if n.Value() != RefMarker {
			if n.HasChildren() {
				if err := substitute(n.Children(), find); err != nil {
					return err
				}
			}

			continue
		}

		name, err := refName(n)
		if err != nil {
			return err
		}

		if v, ok := find(name); ok {
			n = n.Replace(v)
		}
	}

	return nil
}

func refName(n *node.Node) (string, error) {
	c := n.Children()

	switch {
	case c == nil:
		return "", ErrMalformedReference.With(
			slog.String("reason", "reference holds no variable name"))

	case c.Next() != nil:
		return "", ErrMalformedReference.With(
			slog.String("reason", "reference holds more than one variable name"),
			slog.String("reference", n.String()))

	case c.HasChildren():
		return "", ErrMalformedReference.With(
			slog.String("reason", "variable name has children"),
			slog.String("reference", n.String()))
	}

	return c.Value(), nil
}

// pushVariables binds every property of decls to a copy of its body and
// pushes the bindings as one frame. Each value is resolved when declared,
// against the active frames and the declarations before it in decls.
func (in *Inflater) pushVariables(ctx context.Context, decls *node.Node) error {
	frame := map[string]*node.Node{}

	find := func(name string) (*node.Node, bool) {
		if v, ok := frame[name]; ok {
			return v, true
		}

		return in.FindVariable(name)
	}

	for n := range decls.All() {
		if !n.IsProperty() {
			continue
		}

		if _, dup := frame[n.Value()]; dup {
			return ErrDuplicateRegistration.With(
				slog.String("kind", "variable"),
				slog.String("name", n.Value()),
			)
		}

		value := n.CloneChildren()
		if err := substitute(value, find); err != nil {
			return withAttrs(err, slog.String("variable", n.Value()))
		}

		frame[n.Value()] = value
	}

	in.pushFrame(ctx, frame)

	return nil
}

func (in *Inflater) pushFrame(ctx context.Context, frame map[string]*node.Node) {
	in.variables.push(frame)

	in.logger.TraceContext(ctx, "push variables",
		slog.Int("frame", in.variables.len()),
		slog.Any("names", slices.Sorted(maps.Keys(frame))))
}

func (in *Inflater) popVariables(ctx context.Context) {
	in.variables.pop()

	in.logger.TraceContext(ctx, "pop variables",
		slog.Int("frame", in.variables.len()))
}

// bindArgs takes the arguments of a template use from body. A property named
// after a formal variable binds that variable to its body. Then childless
// bare values and variable references bind, in order, to the variables
// still unbound. Bound values are resolved against the active frames. The
// remaining nodes are returned as rest.
func (in *Inflater) bindArgs(
	t *Template,
	body *node.Node,
) (args map[string]*node.Node, rest *node.Node, err error) {
	if len(t.Vars) == 0 || body == nil {
		return nil, body, nil
	}

	var nodes []*node.Node

	for c := body; c != nil; {
		next := c.ChopNext()
		nodes = append(nodes, c)
		c = next
	}

	args = map[string]*node.Node{}
	used := make([]bool, len(nodes))

	for i, c := range nodes {
		if c.IsProperty() && c.HasChildren() && t.HasVar(c.Value()) {
			if _, dup := args[c.Value()]; !dup {
				args[c.Value()] = c.RemoveChildren()
				used[i] = true
			}
		}
	}

	unbound := make([]string, 0, len(t.Vars))
	for _, v := range t.Vars {
		if _, ok := args[v]; !ok {
			unbound = append(unbound, v)
		}
	}

	for i, c := range nodes {
		if len(unbound) == 0 {
			break
		}

		if used[i] || c.IsProperty() || (c.HasChildren() && c.Value() != RefMarker) {
			continue
		}

		args[unbound[0]] = c
		unbound = unbound[1:]
		used[i] = true
	}

	kept := make([]*node.Node, 0, len(nodes))
	for i, c := range nodes {
		if !used[i] {
			kept = append(kept, c)
		}
	}

	for name, v := range args {
		if err := in.Substitute(v); err != nil {
			return nil, nil, withAttrs(err, slog.String("argument", name))
		}
	}

	if len(args) == 0 {
		args = nil
	}

	return args, node.NewChain(kept...), nil
}
