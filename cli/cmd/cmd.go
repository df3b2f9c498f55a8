package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/inflate/inflate"
	"github.com/ardnew/inflate/log"
	"github.com/ardnew/inflate/node"
	"github.com/ardnew/inflate/widget"
)

type (
	contextKey    struct{}
	outputKey     struct{}
	searchPathKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithOutput returns a new context.Context whose commands write their results
// to w instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// WithSearchPath returns a new context.Context containing directories
// searched for included documents.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

func nodeOptions(ctx context.Context) []node.Option {
	return []node.Option{
		node.WithLogger(log.Default()),
		node.WithSearchPath(searchPathFrom(ctx)...),
	}
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// load reads each source and joins the resulting chains in order. A file
// named more than once is read once. Standard input is read last, at most
// once, and is always in native syntax. When includes is set, include nodes
// are resolved; relative names in standard input are looked up from the
// working directory.
func load(ctx context.Context, sources []string, includes bool) (*node.Node, error) {
	opts := nodeOptions(ctx)
	seen := make(map[fileKey]struct{})

	var (
		chains   []*node.Node
		hasStdin bool
	)

	for _, src := range sources {
		if src == stdinSource {
			hasStdin = true

			continue
		}

		if !unique(src, seen) {
			log.DebugContext(ctx, "skip duplicate source", slog.String("source", src))

			continue
		}

		chain, err := loadFile(ctx, src, includes, opts)
		if err != nil {
			return nil, err
		}

		chains = append(chains, chain)
	}

	if hasStdin {
		chain, err := node.ParseReader(ctx, os.Stdin,
			append(opts, node.WithSource(stdinSource))...)
		if err != nil {
			return nil, err
		}

		if includes {
			if chain, err = node.ResolveFileIncludes(ctx, ".", chain, opts...); err != nil {
				return nil, err
			}
		}

		chains = append(chains, chain)
	}

	return node.NewChain(chains...), nil
}

func loadFile(ctx context.Context, name string, includes bool, opts []node.Option) (*node.Node, error) {
	if includes {
		return node.LoadFile(ctx, name, opts...)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, node.ErrReadInput.Wrap(err).With(slog.String("source", name))
	}

	return node.Decode(ctx, name, data, opts...)
}

// unique reports whether the file at path has not been seen before, and
// records it. Files that cannot be identified are always unique.
func unique(path string, seen map[fileKey]struct{}) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return true
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return true
	}

	key, ok := makeFileKey(info)
	if !ok {
		return true
	}

	if _, exists := seen[key]; exists {
		return false
	}

	seen[key] = struct{}{}

	return true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}

// inflater returns an Inflater with every widget kind registered.
func inflater(ctx context.Context, maxDepth int) (*inflate.Inflater, error) {
	in := inflate.New(
		inflate.WithLogger(log.Default()),
		inflate.WithMaxDepth(maxDepth),
		inflate.WithIncludeOptions(node.WithSearchPath(searchPathFrom(ctx)...)),
	)

	if err := widget.Register(in); err != nil {
		return nil, err
	}

	return in, nil
}

// inflateWidget loads sources and inflates them into a widget.
func inflateWidget(ctx context.Context, sources []string, maxDepth int) (*widget.Widget, error) {
	chain, err := load(ctx, sources, true)
	if err != nil {
		return nil, err
	}

	in, err := inflater(ctx, maxDepth)
	if err != nil {
		return nil, err
	}

	v, err := in.Inflate(ctx, chain)
	if err != nil {
		return nil, err
	}

	w, ok := v.(*widget.Widget)
	if !ok || w == nil {
		return nil, ErrNoObject.With(slog.Any("sources", sources))
	}

	return w, nil
}
