package node

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/inflate/pkg"
)

// IncludeKeyword is the property that names a file to splice into the
// top level of a document.
const IncludeKeyword = "include"

// SearchPathEnv returns the name of the environment variable holding
// additional include directories, separated by [os.PathListSeparator].
func SearchPathEnv() string { return pkg.EnvPrefix() + "PATH" }

// LoadFile reads, decodes, and resolves includes of the named file from the
// operating system's file system. The format is chosen by extension.
func LoadFile(ctx context.Context, name string, opts ...Option) (*Node, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", name))
	}

	return Load(ctx, osFS{}, filepath.ToSlash(abs), opts...)
}

// Load reads, decodes, and resolves includes of the named file in fsys.
func Load(ctx context.Context, fsys fs.FS, name string, opts ...Option) (*Node, error) {
	inc := newIncluder(ctx, fsys, opts...)

	return inc.load(name)
}

// ResolveIncludes replaces each top-level include{path} node of chain with
// the decoded chain of the named file. Relative names are looked up first in
// dir, then in each search directory. Included files are resolved
// recursively.
func ResolveIncludes(
	ctx context.Context,
	fsys fs.FS,
	dir string,
	chain *Node,
	opts ...Option,
) (*Node, error) {
	return newIncluder(ctx, fsys, opts...).resolve(dir, chain)
}

// ResolveFileIncludes is [ResolveIncludes] on the operating system's file
// system, with dir naming a host directory.
func ResolveFileIncludes(ctx context.Context, dir string, chain *Node, opts ...Option) (*Node, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", dir))
	}

	return ResolveIncludes(ctx, osFS{}, filepath.ToSlash(abs), chain, opts...)
}

type includer struct {
	ctx    context.Context
	fsys   fs.FS
	opts   []Option
	cfg    config
	search []string
	active []string
}

func newIncluder(ctx context.Context, fsys fs.FS, opts ...Option) *includer {
	cfg := makeConfig(opts...)

	return &includer{
		ctx:    ctx,
		fsys:   fsys,
		opts:   opts,
		cfg:    cfg,
		search: searchPath(cfg.search),
	}
}

func (in *includer) load(name string) (*Node, error) {
	if slices.Contains(in.active, name) {
		return nil, ErrIncludeCycle.With(
			slog.String("file", name),
			slog.String("chain", strings.Join(slices.Concat(in.active, []string{name}), " -> ")),
		)
	}

	data, err := fs.ReadFile(in.fsys, name)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", name))
	}

	chain, err := Decode(in.ctx, name, data, in.opts...)
	if err != nil {
		return nil, err
	}

	in.active = append(in.active, name)
	defer func() { in.active = in.active[:len(in.active)-1] }()

	return in.resolve(path.Dir(name), chain)
}

func (in *includer) resolve(dir string, chain *Node) (*Node, error) {
	var head, tail *Node

	link := func(c *Node) {
		if c == nil {
			return
		}

		if head == nil {
			head = c
		} else {
			tail.next = c
		}

		tail = c.Last()
	}

	for c := chain; c != nil; {
		next := c.ChopNext()

		if !c.IsProperty() || c.value != IncludeKeyword {
			link(c)

			c = next

			continue
		}

		name, err := includeName(c)
		if err != nil {
			return nil, err
		}

		file, err := in.find(dir, name)
		if err != nil {
			return nil, err
		}

		sub, err := in.load(file)
		if err != nil {
			return nil, err
		}

		in.cfg.logger.TraceContext(in.ctx, "include resolved",
			slog.String("name", name),
			slog.String("file", file),
			slog.Int("nodes", sub.Len()))

		link(sub)

		c = next
	}

	return head, nil
}

func includeName(n *Node) (string, error) {
	c := n.children
	if c == nil || c.next != nil || c.children != nil || c.value == "" {
		return "", ErrMalformedInclude.With(slog.String("node", n.String()))
	}

	return c.value, nil
}

func (in *includer) find(dir, name string) (string, error) {
	candidates := []string{name}

	if !isAbs(name) {
		candidates = candidates[:0]
		candidates = append(candidates, path.Join(dir, name))

		for _, s := range in.search {
			candidates = append(candidates, path.Join(s, name))
		}
	}

	for _, c := range candidates {
		if info, err := fs.Stat(in.fsys, c); err == nil && !info.IsDir() {
			return c, nil
		}
	}

	return "", ErrIncludeNotFound.With(
		slog.String("name", name),
		slog.String("searched", strings.Join(candidates, string(os.PathListSeparator))),
	)
}

func isAbs(name string) bool {
	return strings.HasPrefix(name, "/") || filepath.IsAbs(filepath.FromSlash(name))
}

// searchPath returns dirs followed by the directories listed in the
// environment, without duplicates.
func searchPath(dirs []string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(SearchPathEnv())),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()

	out := make([]string, 0, len(dirs))

	for _, d := range append(slices.Clone(dirs), filepath.SplitList(joined)...) {
		d = filepath.ToSlash(strings.TrimSpace(d))
		if d != "" && !slices.Contains(out, d) {
			out = append(out, d)
		}
	}

	return out
}

// osFS opens slash-separated, possibly absolute, paths on the host file
// system. os.DirFS rejects absolute names.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(filepath.FromSlash(name))
}
