package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/inflate/widget"
)

// Query inflates a document and evaluates an expression against the result.
//
// The expression sees the inflated object as the map root, with the keys
// kind, name, props, and children, and may call find(name) to get the first
// descendant widget with the given name.
type Query struct {
	MaxDepth int  `default:"0"     help:"Maximum object nesting depth (0 for no limit)."`
	Indent   int  `default:"2"     help:"Indent width for structured results." short:"i"`
	Raw      bool `default:"true"  help:"Print string results without quotes." negatable:""`

	Expression string   `arg:"" help:"Expression to evaluate."                 name:"expression"`
	Sources    []string `arg:"" default:"-" help:"Source input files or '-' for stdin." name:"source"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	w, err := inflateWidget(ctx, q.Sources, q.MaxDepth)
	if err != nil {
		return err
	}

	result, err := Evaluate(q.Expression, w)
	if err != nil {
		return err
	}

	return q.print(ctx, result)
}

// Evaluate compiles expression and runs it against w.
func Evaluate(expression string, w *widget.Widget) (any, error) {
	env := map[string]any{"root": w.ToMap()}

	find := expr.Function("find",
		func(params ...any) (any, error) {
			name, _ := params[0].(string)
			if f := w.Find(name); f != nil {
				return f.ToMap(), nil
			}

			return nil, nil
		},
		new(func(string) map[string]any),
	)

	program, err := expr.Compile(expression, expr.Env(env), find)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("expression", expression))
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("expression", expression))
	}

	return result, nil
}

func (q *Query) print(ctx context.Context, result any) error {
	out := outputFrom(ctx)

	if s, ok := result.(string); ok && q.Raw {
		_, err := fmt.Fprintln(out, s)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	enc := json.NewEncoder(out)
	if q.Indent > 0 {
		enc.SetIndent("", fmt.Sprintf("%*s", q.Indent, ""))
	}

	if err := enc.Encode(result); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
