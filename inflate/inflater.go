package inflate

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/inflate/log"
	"github.com/ardnew/inflate/node"
)

// Inflater turns node chains into objects using its registered factories.
// Template and variable scopes live on the Inflater and are shared by nested
// [Inflater.Inflate] calls made from factories.
//
// An Inflater is not safe for concurrent use.
type Inflater struct {
	factories map[string]Factory
	templates scope[*Template]
	variables scope[*node.Node]
	logger    log.Logger
	nodeOpts  []node.Option
	maxDepth  int
	depth     int
}

// Option configures an [Inflater].
type Option func(*Inflater)

// WithLogger sets the logger used to trace scope changes, template
// application, and factory calls. The zero Logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(in *Inflater) { in.logger = logger }
}

// WithMaxDepth limits the nesting of [Inflater.Inflate] calls. Zero, the
// default, means no limit.
func WithMaxDepth(depth int) Option {
	return func(in *Inflater) { in.maxDepth = max(depth, 0) }
}

// WithIncludeOptions sets options used when reading documents with
// [Inflater.InflateString], [Inflater.InflateReader], and
// [Inflater.InflateFile].
func WithIncludeOptions(opts ...node.Option) Option {
	return func(in *Inflater) { in.nodeOpts = append(in.nodeOpts, opts...) }
}

// New returns an Inflater with no registered factories.
func New(opts ...Option) *Inflater {
	in := &Inflater{factories: map[string]Factory{}}

	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}

	in.nodeOpts = append([]node.Option{node.WithLogger(in.logger)}, in.nodeOpts...)

	return in
}

// Logger returns the logger the Inflater was configured with.
func (in *Inflater) Logger() log.Logger { return in.logger }

// Inflate creates the object described by chain.
//
// Leading defs blocks of chain are declared first and stay visible until
// the call returns. The next node names a template or a factory type; any
// other leading property is an [ErrMalformedDeclaration]. When the node
// names a template, the template body is merged with the node's body.
// The node's own defs block and any template arguments are in scope while
// the body's variable references are substituted and the factory runs.
// Template arguments take precedence over the node's defs.
//
// Inflate returns nil and no error when chain holds only declarations.
func (in *Inflater) Inflate(ctx context.Context, chain *node.Node) (any, error) {
	if in.depth == 0 {
		nt, nv := in.templates.len(), in.variables.len()

		defer func() {
			in.templates.truncate(nt)
			in.variables.truncate(nv)
		}()
	}

	in.depth++
	defer func() { in.depth-- }()

	if in.maxDepth > 0 && in.depth > in.maxDepth {
		return nil, ErrMaxDepthExceeded.With(slog.Int("max_depth", in.maxDepth))
	}

	n := chain
	for ; n.IsProperty(); n = n.Next() {
		if n.Value() != DefsKeyword {
			return nil, ErrMalformedDeclaration.With(
				slog.String("reason", "unknown declaration before first object"),
				slog.String("node", n.Value()),
			)
		}

		release, err := in.declare(ctx, n.Children())
		if err != nil {
			return nil, err
		}

		defer release()
	}

	if n == nil {
		in.logger.TraceContext(ctx, "nothing to inflate", slog.Int("depth", in.depth))

		return nil, nil
	}

	typ := n.Value()
	body := n.CloneChildren()

	var args map[string]*node.Node

	if t, ok := in.FindTemplate(typ); ok {
		var err error

		args, body, err = in.bindArgs(t, body)
		if err != nil {
			return nil, withAttrs(err, slog.String("template", typ))
		}

		body, err = Merge(t.Definition.Children(), body, t.Vars)
		if err != nil {
			return nil, withAttrs(err, slog.String("template", typ))
		}

		in.logger.TraceContext(ctx, "apply template",
			slog.String("template", typ),
			slog.String("type", t.Type()),
			slog.Int("args", len(args)))

		typ = t.Type()
	}

	f, err := in.factory(typ)
	if err != nil {
		return nil, err
	}

	if defs := n.Child(DefsKeyword); defs != nil {
		release, err := in.declare(ctx, defs.Children())
		if err != nil {
			return nil, err
		}

		defer release()
	}

	// Arguments shadow the use site's own defs.
	if args != nil {
		in.pushFrame(ctx, args)
		defer in.popVariables(ctx)
	}

	if err := in.Substitute(body); err != nil {
		return nil, withAttrs(err, slog.String("type", typ))
	}

	in.logger.TraceContext(ctx, "create",
		slog.String("type", typ),
		slog.Int("depth", in.depth))

	return f.Create(ctx, in, body)
}

// declare pushes decls onto the template and variable scopes. The returned
// function pops both frames. On error nothing remains pushed.
func (in *Inflater) declare(ctx context.Context, decls *node.Node) (release func(), err error) {
	if decls == nil {
		return func() {}, nil
	}

	if err := in.pushTemplates(ctx, decls); err != nil {
		return nil, err
	}

	if err := in.pushVariables(ctx, decls); err != nil {
		in.popTemplates(ctx)

		return nil, err
	}

	return func() {
		in.popVariables(ctx)
		in.popTemplates(ctx)
	}, nil
}

// InflateString parses s as a native document and inflates it.
func (in *Inflater) InflateString(ctx context.Context, s string) (any, error) {
	chain, err := node.ParseString(ctx, s, in.nodeOpts...)
	if err != nil {
		return nil, err
	}

	return in.Inflate(ctx, chain)
}

// InflateReader parses a native document from r and inflates it.
func (in *Inflater) InflateReader(ctx context.Context, r io.Reader) (any, error) {
	chain, err := node.ParseReader(ctx, r, in.nodeOpts...)
	if err != nil {
		return nil, err
	}

	return in.Inflate(ctx, chain)
}

// InflateFile loads the named document, resolving includes, and inflates it.
func (in *Inflater) InflateFile(ctx context.Context, name string) (any, error) {
	chain, err := node.LoadFile(ctx, name, in.nodeOpts...)
	if err != nil {
		return nil, err
	}

	return in.Inflate(ctx, chain)
}
