package widget

import (
	"context"
	"log/slog"

	"github.com/ardnew/inflate/inflate"
	"github.com/ardnew/inflate/node"
)

// Kinds registered by [Register].
const (
	KindWidget         = "Widget"
	KindContainer      = "Container"
	KindFrame          = "Frame"
	KindVerticalArea   = "VerticalArea"
	KindHorizontalArea = "HorizontalArea"
	KindOverlay        = "Overlay"
)

// kinds maps each kind to whether it holds nested widgets.
var kinds = map[string]bool{ //nolint:gochecknoglobals
	KindWidget:         false,
	KindContainer:      true,
	KindFrame:          true,
	KindVerticalArea:   true,
	KindHorizontalArea: true,
	KindOverlay:        true,
}

// IsContainer reports whether kind inflates its bare children.
func IsContainer(kind string) bool { return kinds[kind] }

// Register adds a factory for every widget kind to in.
func Register(in *inflate.Inflater) error {
	for kind, container := range kinds {
		f := Leaf(kind)
		if container {
			f = Container(kind)
		}

		if err := in.Register(kind, f); err != nil {
			return err
		}
	}

	return nil
}

// Leaf returns a factory creating widgets of the given kind from their
// properties. Bare children are ignored.
func Leaf(kind string) inflate.Factory {
	return inflate.FactoryFunc(
		func(ctx context.Context, in *inflate.Inflater, body *node.Node) (any, error) {
			w := &Widget{Kind: kind}
			w.fill(body)

			for n := range body.All() {
				if !n.IsProperty() {
					in.Logger().TraceContext(ctx, "ignore child of leaf widget",
						slog.String("kind", kind),
						slog.String("child", n.Value()))
				}
			}

			return w, nil
		},
	)
}

// Container returns a factory creating widgets of the given kind. Each bare
// child is inflated with in and must produce a *Widget.
func Container(kind string) inflate.Factory {
	return inflate.FactoryFunc(
		func(ctx context.Context, in *inflate.Inflater, body *node.Node) (any, error) {
			w := &Widget{Kind: kind}
			w.fill(body)

			for n := range body.All() {
				if n.IsProperty() {
					continue
				}

				v, err := in.Inflate(ctx, n)
				if err != nil {
					return nil, err
				}

				c, ok := v.(*Widget)
				if !ok {
					return nil, ErrNotWidget.With(
						slog.String("kind", kind),
						slog.String("child", n.Value()),
					)
				}

				w.Children = append(w.Children, c)
			}

			return w, nil
		},
	)
}
