package node

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
)

// String returns the chain starting at n in compact native syntax.
func (n *Node) String() string {
	var sb strings.Builder

	writeCompact(&sb, n)

	return sb.String()
}

// Format writes chain to w in native syntax. With indent 0 the chain is
// written on a single line; otherwise each node starts a new line and bodies
// are indented by indent spaces per level. Bodies holding only childless
// nodes are kept on one line.
func Format(w io.Writer, chain *Node, indent int) error {
	bw := bufio.NewWriter(w)

	if indent <= 0 {
		writeCompact(bw, chain)

		if chain != nil {
			bw.WriteByte('\n')
		}
	} else {
		writeIndented(bw, chain, strings.Repeat(" ", indent), "")
	}

	if err := bw.Flush(); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}

func writeCompact(w io.StringWriter, chain *Node) {
	for c := chain; c != nil; c = c.next {
		if c != chain {
			w.WriteString(" ")
		}

		w.WriteString(Quote(c.value))

		if c.children != nil {
			w.WriteString("{")
			writeCompact(w, c.children)
			w.WriteString("}")
		}
	}
}

func writeIndented(w io.StringWriter, chain *Node, unit, prefix string) {
	for c := chain; c != nil; c = c.next {
		w.WriteString(prefix)
		w.WriteString(Quote(c.value))

		switch {
		case c.children == nil:

		case flat(c.children):
			w.WriteString("{")
			writeCompact(w, c.children)
			w.WriteString("}")

		default:
			w.WriteString("{\n")
			writeIndented(w, c.children, unit, prefix+unit)
			w.WriteString(prefix + "}")
		}

		w.WriteString("\n")
	}
}

func flat(chain *Node) bool {
	for c := chain; c != nil; c = c.next {
		if c.children != nil {
			return false
		}
	}

	return true
}

// Quote returns value as a native token, enclosed in double quotes when it
// could not otherwise be read back unchanged.
func Quote(value string) string {
	if !needsQuote(value) {
		return value
	}

	var sb strings.Builder

	sb.Grow(len(value) + 2)
	sb.WriteByte('"')

	for _, r := range value {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}

func needsQuote(value string) bool {
	if value == "" {
		return true
	}

	return strings.ContainsFunc(value, func(r rune) bool {
		switch r {
		case '{', '}', '"':
			return true
		}

		return unicode.IsSpace(r)
	}) || strings.Contains(value, "//") || strings.Contains(value, "/*")
}

// ToNative converts chain to plain Go values: a childless node becomes its
// value string, a node with children becomes a single-key map from its value
// to the converted children, and the chain itself becomes a slice.
func ToNative(chain *Node) []any {
	out := make([]any, 0, chain.Len())

	for c := chain; c != nil; c = c.next {
		if c.children == nil {
			out = append(out, c.value)
		} else {
			out = append(out, map[string]any{c.value: ToNative(c.children)})
		}
	}

	return out
}

// WriteJSON writes chain to w as JSON in the shape produced by [ToNative].
// A positive indent selects multi-line output.
func WriteJSON(w io.Writer, chain *Node, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(ToNative(chain), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(ToNative(chain))
	}

	if err != nil {
		return ErrEncode.Wrap(err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}

// WriteYAML writes chain to w as YAML in the shape produced by [ToNative].
func WriteYAML(w io.Writer, chain *Node, indent int) error {
	if indent <= 0 {
		indent = 2
	}

	data, err := yaml.MarshalWithOptions(ToNative(chain),
		yaml.Indent(indent),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	if _, err := w.Write(data); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}
