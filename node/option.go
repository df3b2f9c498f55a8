package node

import "github.com/ardnew/inflate/log"

// Option configures parsing, decoding, and include resolution.
type Option func(*config)

type config struct {
	logger log.Logger
	source string
	search []string
}

func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// WithLogger sets the logger used to trace parsing and include resolution.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithSource names the document being read. The name is attached to errors.
func WithSource(name string) Option {
	return func(c *config) { c.source = name }
}

// WithSearchPath appends directories searched for included files after the
// including file's own directory.
func WithSearchPath(dirs ...string) Option {
	return func(c *config) { c.search = append(c.search, dirs...) }
}
