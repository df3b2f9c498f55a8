package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/inflate/log"
	"github.com/ardnew/inflate/node"
)

// resolve returns a [kong.ConfigurationLoader] that reads configuration
// files written in the node syntax.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config")
//
// The first top-level property called name holds the configuration. Each of
// its child properties sets the flag with the same name:
//   - A body of one value sets that value
//   - A body of several values sets a list, for repeatable flags
//   - A property without a body is ignored
//   - Underscores may be used in place of hyphens
//
// Example config file:
//
//	config{
//	  log-level{debug}
//	  log-format{json}
//	  include-path{ /usr/share/inflate ~/.local/share/inflate }
//	}
//
// Command-line flags override config file values. A file that cannot be
// parsed is logged and ignored.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		chain, err := node.ParseReader(ctx, r, node.WithSource(name))
		if err != nil {
			log.WarnContext(ctx, "ignore invalid configuration file",
				slog.Any("error", err))

			return config{}, nil
		}

		block := chain.FindProperty(name)
		if block == nil {
			return config{}, nil
		}

		return makeConfig(block.Children()), nil
	}
}

// config implements [kong.Resolver] for node syntax configuration.
type config map[string]any

func makeConfig(chain *node.Node) config {
	c := config{}

	for n := range chain.All() {
		if !n.IsProperty() || !n.HasChildren() {
			continue
		}

		key := strings.ReplaceAll(n.Value(), "_", "-")
		if _, dup := c[key]; dup {
			continue
		}

		v := n.Children()
		if v.Next() == nil && !v.HasChildren() {
			c[key] = v.Value()

			continue
		}

		list := make([]any, 0, v.Len())
		for e := range v.All() {
			if e.HasChildren() {
				list = append(list, e.String())
			} else {
				list = append(list, e.Value())
			}
		}

		c[key] = list
	}

	return c
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
