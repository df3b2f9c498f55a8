package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/inflate/log"
	"github.com/ardnew/inflate/widget"
)

// Inflate reads a document, inflates it, and prints the resulting object.
type Inflate struct {
	Format   string `default:"native" enum:"native,json,yaml,tree" help:"Output format."                                short:"f"`
	Indent   int    `default:"2"                                   help:"Indent width for formatted output."            short:"i"`
	MaxDepth int    `default:"0"                                   help:"Maximum object nesting depth (0 for no limit)."`

	Sources []string `arg:"" default:"-" help:"Source input files or '-' for stdin." name:"source"`
}

// Run executes the inflate command.
func (i *Inflate) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	w, err := inflateWidget(ctx, i.Sources, i.MaxDepth)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "inflated",
		slog.String("kind", w.Kind),
		slog.Int("children", len(w.Children)),
	)

	return widget.Write(outputFrom(ctx), w, i.Format, i.Indent)
}
