package inflate

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/inflate/node"
)

// Template is a named, parameterized definition applied at use sites by
// merging the use-site body into a copy of the definition's body.
type Template struct {
	// Definition holds the resolved type name and the template body as its
	// children. It is owned by the template.
	Definition *node.Node
	// Vars lists the formal variable names in declaration order.
	Vars []string
}

// Type returns the type name instances of t are created as.
func (t *Template) Type() string { return t.Definition.Value() }

// HasVar reports whether name is a formal variable of t.
func (t *Template) HasVar(name string) bool { return slices.Contains(t.Vars, name) }

// FindTemplate returns the innermost template named name.
func (in *Inflater) FindTemplate(name string) (*Template, bool) {
	return in.templates.find(name)
}

// parseTemplate builds a template from a declaration body. Childless
// properties declare formal variables, and the first bare value is the
// definition. Further bare values are ignored. If the definition names a
// template visible through find, the parent's body is merged in now, so
// later redefinitions of the parent do not affect the result.
func parseTemplate(
	chain *node.Node,
	find func(string) (*Template, bool),
) (*Template, error) {
	t := &Template{}

	for n := range chain.All() {
		if n.IsProperty() {
			if n.HasChildren() {
				return nil, ErrMalformedTemplate.With(
					slog.String("reason", "template argument has children"),
					slog.String("argument", n.Value()),
				)
			}

			if !t.HasVar(n.Value()) {
				t.Vars = append(t.Vars, n.Value())
			}

			continue
		}

		if t.Definition == nil {
			t.Definition = n.Clone()
		}
	}

	if t.Definition == nil {
		return nil, ErrMalformedTemplate.With(
			slog.String("reason", "template has no definition"))
	}

	parent, ok := find(t.Definition.Value())
	if !ok {
		return t, nil
	}

	body, err := Merge(parent.Definition.Children(), t.Definition.RemoveChildren(), parent.Vars)
	if err != nil {
		return nil, err
	}

	t.Definition.SetValue(parent.Type())
	t.Definition.SetChildren(body)

	for _, v := range parent.Vars {
		if !t.HasVar(v) {
			t.Vars = append(t.Vars, v)
		}
	}

	return t, nil
}

// pushTemplates parses every bare value of decls as a template declaration
// and pushes them as one frame. A template may inherit from templates
// declared earlier in the same block.
func (in *Inflater) pushTemplates(ctx context.Context, decls *node.Node) error {
	frame := map[string]*Template{}

	find := func(name string) (*Template, bool) {
		if t, ok := frame[name]; ok {
			return t, true
		}

		return in.templates.find(name)
	}

	for n := range decls.All() {
		if n.IsProperty() {
			continue
		}

		if !n.HasChildren() {
			return ErrMalformedTemplate.With(
				slog.String("reason", "template has no body"),
				slog.String("template", n.Value()),
			)
		}

		if _, dup := frame[n.Value()]; dup {
			return ErrDuplicateRegistration.With(
				slog.String("kind", "template"),
				slog.String("name", n.Value()),
			)
		}

		t, err := parseTemplate(n.Children(), find)
		if err != nil {
			return withAttrs(err, slog.String("template", n.Value()))
		}

		frame[n.Value()] = t
	}

	in.templates.push(frame)

	in.logger.TraceContext(ctx, "push templates",
		slog.Int("frame", in.templates.len()),
		slog.Any("names", slices.Sorted(maps.Keys(frame))))

	return nil
}

func (in *Inflater) popTemplates(ctx context.Context) {
	in.templates.pop()

	in.logger.TraceContext(ctx, "pop templates",
		slog.Int("frame", in.templates.len()))
}
