package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/inflate/log"
	"github.com/ardnew/inflate/node"
)

// Fmt reads documents in any supported format and writes them back in the
// chosen format without inflating them.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	CBOR   CBOR   `cmd:""                    help:"Format as CBOR."`
}

// Input selects the documents read by a fmt subcommand.
type Input struct {
	Includes bool `help:"Resolve include nodes before formatting."`

	Sources []string `arg:"" default:"-" help:"Source input files or '-' for stdin." name:"source"`
}

func (in Input) load(ctx context.Context, format string) (*node.Node, error) {
	chain, err := load(ctx, in.Sources, in.Includes)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "format",
		slog.String("format", format),
		slog.Int("nodes", chain.Len()),
	)

	return chain, nil
}

// Native formats input as native syntax.
type Native struct {
	Input

	Indent int `default:"2" help:"Indent width for formatted output (0 for a single line)" short:"i"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	chain, err := f.load(ctx, node.FormatNative)
	if err != nil {
		return err
	}

	return node.Format(outputFrom(ctx), chain, f.Indent)
}

// JSON formats input as JSON.
type JSON struct {
	Input

	Indent int `default:"2" help:"Indent width for JSON output (0 for a single line)" short:"i"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	chain, err := j.load(ctx, node.FormatJSON)
	if err != nil {
		return err
	}

	return node.WriteJSON(outputFrom(ctx), chain, j.Indent)
}

// YAML formats input as YAML.
type YAML struct {
	Input

	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	chain, err := y.load(ctx, node.FormatYAML)
	if err != nil {
		return err
	}

	return node.WriteYAML(outputFrom(ctx), chain, y.Indent)
}

// CBOR encodes input as CBOR.
type CBOR struct {
	Input
}

// Run executes the cbor command.
func (c *CBOR) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	chain, err := c.load(ctx, node.FormatCBOR)
	if err != nil {
		return err
	}

	data, err := chain.MarshalCBOR()
	if err != nil {
		return err
	}

	if _, err := outputFrom(ctx).Write(data); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", node.FormatCBOR))
	}

	return nil
}
