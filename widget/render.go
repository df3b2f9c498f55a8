package widget

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/inflate/node"
)

// Output formats accepted by [Write].
const (
	FormatNative = "native"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatTree   = "tree"
)

// Formats returns the output formats accepted by [Write].
func Formats() []string {
	return []string{FormatNative, FormatJSON, FormatYAML, FormatTree}
}

//nolint:gochecknoglobals
var (
	kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	propStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Write renders wd to out in the named format. Indent selects multi-line
// native and JSON output, and the YAML indent width. It is ignored by the
// tree format.
func Write(out io.Writer, wd *Widget, format string, indent int) error {
	var err error

	switch format {
	case FormatNative:
		return node.Format(out, wd.Node(), indent)

	case FormatJSON:
		var data []byte

		if indent > 0 {
			data, err = json.MarshalIndent(wd.ToMap(), "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(wd.ToMap())
		}

		if err == nil {
			_, err = out.Write(append(data, '\n'))
		}

	case FormatYAML:
		var data []byte

		data, err = yaml.MarshalWithOptions(wd.ToMap(),
			yaml.Indent(max(indent, 2)),
			yaml.IndentSequence(true),
		)
		if err == nil {
			_, err = out.Write(data)
		}

	case FormatTree:
		_, err = io.WriteString(out, wd.Tree().String()+"\n")

	default:
		return ErrUnknownFormat.With(slog.String("format", format))
	}

	if err != nil {
		return node.ErrEncode.Wrap(err).With(slog.String("format", format))
	}

	return nil
}

// Tree returns wd as a lipgloss tree. Properties are listed before nested
// widgets.
func (w *Widget) Tree() *tree.Tree {
	label := kindStyle.Render(w.Kind)
	if w.Name != "" {
		label += " " + nameStyle.Render(w.Name)
	}

	t := tree.Root(label).Enumerator(tree.RoundedEnumerator)

	for _, p := range w.Props {
		item := p.Name
		if p.Value != nil {
			item += ": " + text(p.Value)
		}

		t.Child(propStyle.Render(item))
	}

	for _, c := range w.Children {
		t.Child(c.Tree())
	}

	return t
}
