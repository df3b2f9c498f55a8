package node

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// parsed holds chains parsed from native text, keyed by the xxh3 hash of the
// source. Entries are never handed out directly; callers receive clones.
//
//nolint:gochecknoglobals
var parsed sync.Map

// ParseReader reads all of r and parses it as native document text. Results
// are cached by content, so reading an identical document again skips the
// parser. The returned chain is always a private copy.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Node, error) {
	cfg := makeConfig(opts...)

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", cfg.source))
	}

	key := xxh3.Hash(data)

	if v, ok := parsed.Load(key); ok {
		cfg.logger.TraceContext(ctx, "parse cache hit",
			slog.String("source", cfg.source),
			slog.Uint64("key", key))

		return v.(*Node).CloneChain(), nil
	}

	chain, err := Parse(ctx, data, opts...)
	if err != nil {
		return nil, err
	}

	parsed.Store(key, chain.CloneChain())

	return chain, nil
}

// ClearCache discards every cached parse result.
func ClearCache() { parsed.Clear() }
