package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/inflate/log"
	"github.com/ardnew/inflate/node"
	"github.com/ardnew/inflate/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	err = node.Format(file, configNode(ktx), defaultConfigIndent)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// configNode builds the config{...} block from current flag values.
func configNode(ktx *kong.Context) *node.Node {
	var entries []*node.Node

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Flags() {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagValue(ktx.FlagValue(flag)); val != nil {
			entries = append(entries, node.New(flag.Name).WithChildren(val...))
		}
	}

	return node.New(ConfigIdentifier).WithChildren(entries...)
}

// flagValue returns the nodes holding a flag value, or nil if it is unset.
func flagValue(val any) []*node.Node {
	switch v := val.(type) {
	case nil:
		return nil

	case bool:
		return []*node.Node{node.New(strconv.FormatBool(v))}

	case string:
		if v == "" {
			return nil
		}

		return []*node.Node{node.New(v)}

	case []string:
		out := make([]*node.Node, 0, len(v))
		for _, s := range v {
			out = append(out, node.New(s))
		}

		if len(out) == 0 {
			return nil
		}

		return out

	default:
		return []*node.Node{node.New(fmt.Sprint(v))}
	}
}
