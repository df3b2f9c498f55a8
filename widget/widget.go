package widget

import (
	"github.com/ardnew/inflate/inflate"
	"github.com/ardnew/inflate/node"
)

// NameProperty is the property that sets [Widget.Name].
const NameProperty = "name"

// Widget is an inflated object.
type Widget struct {
	Kind     string
	Name     string
	Props    []Property
	Children []*Widget
}

// Property is a named property of a [Widget]. Value holds the property body
// and is nil for a property written without one.
type Property struct {
	Name  string
	Value *node.Node
}

// Prop returns the body of the first property named name.
func (w *Widget) Prop(name string) (*node.Node, bool) {
	for _, p := range w.Props {
		if p.Name == name {
			return p.Value, true
		}
	}

	return nil, false
}

// Text returns the text of the property named name, or the empty string if
// w has no such property. A body of one plain value is returned as is, and
// any other body in compact native syntax.
func (w *Widget) Text(name string) string {
	v, _ := w.Prop(name)

	return text(v)
}

func text(v *node.Node) string {
	if v.Next() == nil && !v.HasChildren() {
		return v.Value()
	}

	return v.String()
}

// Find returns the first widget named name in a depth-first search of w and
// its descendants.
func (w *Widget) Find(name string) *Widget {
	if w == nil {
		return nil
	}

	if w.Name == name {
		return w
	}

	for _, c := range w.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}

	return nil
}

// Node returns w written back as a node chain of one node.
func (w *Widget) Node() *node.Node {
	n := node.New(w.Kind)

	var body []*node.Node

	if w.Name != "" {
		body = append(body, node.New(NameProperty).WithChildren(node.New(w.Name)))
	}

	for _, p := range w.Props {
		prop := node.New(p.Name)
		prop.SetChildren(p.Value.CloneChain())
		body = append(body, prop)
	}

	for _, c := range w.Children {
		body = append(body, c.Node())
	}

	n.SetChildren(node.NewChain(body...))

	return n
}

// ToMap returns w as nested maps and slices suitable for encoding and for
// expression evaluation. Properties map to strings when their body is a
// single plain value.
func (w *Widget) ToMap() map[string]any {
	props := make(map[string]any, len(w.Props))
	for _, p := range w.Props {
		if _, ok := props[p.Name]; !ok {
			props[p.Name] = propValue(p.Value)
		}
	}

	children := make([]any, 0, len(w.Children))
	for _, c := range w.Children {
		children = append(children, c.ToMap())
	}

	m := map[string]any{
		"kind":     w.Kind,
		"props":    props,
		"children": children,
	}

	if w.Name != "" {
		m["name"] = w.Name
	}

	return m
}

func propValue(v *node.Node) any {
	switch {
	case v == nil:
		return nil

	case v.Next() == nil && !v.HasChildren():
		return v.Value()
	}

	return node.ToNative(v)
}

// fill records the properties of body on w. Declarations are skipped.
func (w *Widget) fill(body *node.Node) {
	for n := range body.All() {
		if !n.IsProperty() || n.Value() == inflate.DefsKeyword {
			continue
		}

		if n.Value() == NameProperty && w.Name == "" {
			w.Name = text(n.Children())

			continue
		}

		w.Props = append(w.Props, Property{
			Name:  n.Value(),
			Value: n.CloneChildren(),
		})
	}
}
