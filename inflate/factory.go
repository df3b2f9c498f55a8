package inflate

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/inflate/node"
)

// Factory constructs an object of one registered type from a fully resolved
// children chain. Factories of container types may call [Inflater.Inflate]
// on their children; nested calls share the inflater's scopes.
type Factory interface {
	Create(ctx context.Context, in *Inflater, children *node.Node) (any, error)
}

// FactoryFunc adapts a function to [Factory].
type FactoryFunc func(ctx context.Context, in *Inflater, children *node.Node) (any, error)

// Create calls f.
func (f FactoryFunc) Create(
	ctx context.Context,
	in *Inflater,
	children *node.Node,
) (any, error) {
	return f(ctx, in, children)
}

// maxSuggestions bounds the alternatives reported for an unknown type.
const maxSuggestions = 3

// Register adds a factory for the type name.
func (in *Inflater) Register(name string, f Factory) error {
	if _, ok := in.factories[name]; ok {
		return ErrDuplicateRegistration.With(
			slog.String("kind", "factory"),
			slog.String("name", name),
		)
	}

	in.factories[name] = f

	return nil
}

// Unregister removes the factory for the type name and reports whether one
// was registered.
func (in *Inflater) Unregister(name string) bool {
	if _, ok := in.factories[name]; !ok {
		return false
	}

	delete(in.factories, name)

	return true
}

// Factories returns the registered type names in sorted order.
func (in *Inflater) Factories() []string {
	return slices.Sorted(maps.Keys(in.factories))
}

func (in *Inflater) factory(name string) (Factory, error) {
	if f, ok := in.factories[name]; ok {
		return f, nil
	}

	err := ErrUnknownType.With(slog.String("type", name))

	if s := in.suggest(name); len(s) > 0 {
		err = err.With(slog.Any("suggestions", s))
	}

	return nil, err
}

// suggest returns registered type names resembling name, best match first.
func (in *Inflater) suggest(name string) []string {
	if name == "" {
		return nil
	}

	matches := fuzzy.Find(name, in.Factories())

	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
