// Package widget provides a small set of object kinds that can be inflated
// from node documents, and renderers for the resulting object graphs.
//
// Register adds a factory for every kind to an [inflate.Inflater]:
//
//	in := inflate.New()
//	if err := widget.Register(in); err != nil {
//		return err
//	}
//
//	v, err := in.InflateString(ctx, `Frame{ Widget{ text{hi} } }`)
//
// Every kind records its properties. Container kinds additionally inflate
// each bare child node as a nested widget.
package widget
