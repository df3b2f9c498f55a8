package node

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	yamlparser "github.com/goccy/go-yaml/parser"
	"github.com/tidwall/jsonc"
)

// Format names recognized by [Decode] and the command line.
const (
	FormatNative = "native"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatCBOR   = "cbor"
)

// FormatOf returns the document format implied by the extension of name.
// Unrecognized extensions select [FormatNative].
func FormatOf(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".jsonc":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	default:
		return FormatNative
	}
}

// Decode decodes data in the format implied by the extension of name.
func Decode(ctx context.Context, name string, data []byte, opts ...Option) (*Node, error) {
	opts = append([]Option{WithSource(name)}, opts...)

	switch FormatOf(name) {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatCBOR:
		return DecodeCBOR(data)
	default:
		return Parse(ctx, data, opts...)
	}
}

// DecodeJSON decodes JSON, with comments and trailing commas permitted, into
// a chain. Object members become nodes named by their keys in document
// order, with the decoded member value as children. Array elements are
// chained. Scalars become childless nodes holding their literal text, and
// null contributes nothing.
func DecodeJSON(data []byte) (*Node, error) {
	data = jsonc.ToJSON(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	chain, err := decodeJSONValue(dec)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("format", FormatJSON))
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrDecode.With(slog.String("format", FormatJSON),
			slog.String("reason", "trailing data"))
	}

	return chain, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		var chain []*Node

		for dec.More() {
			if t == '{' {
				key, err := dec.Token()
				if err != nil {
					return nil, err
				}

				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}

				chain = append(chain, New(key.(string)).WithChildren(val))
			} else {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}

				chain = append(chain, val)
			}
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return NewChain(chain...), nil

	case string:
		return New(t), nil

	case json.Number:
		return New(t.String()), nil

	case bool:
		return New(strconv.FormatBool(t)), nil

	default:
		return nil, nil
	}
}

// DecodeYAML decodes a YAML document into a chain using the same mapping as
// [DecodeJSON]. Mapping order is preserved and aliases are expanded.
// Several documents in one stream are chained in order.
func DecodeYAML(data []byte) (*Node, error) {
	file, err := yamlparser.ParseBytes(data, 0)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("format", FormatYAML))
	}

	y := yamlDecoder{anchors: map[string]ast.Node{}}
	chain := make([]*Node, 0, len(file.Docs))

	for _, doc := range file.Docs {
		if doc != nil {
			chain = append(chain, y.decode(doc.Body))
		}
	}

	return NewChain(chain...), nil
}

// yamlDecoder converts a goccy AST into a chain, remembering anchored
// values so that later aliases can be expanded.
type yamlDecoder struct {
	anchors map[string]ast.Node
}

func (y yamlDecoder) decode(n ast.Node) *Node {
	switch v := n.(type) {
	case nil, *ast.NullNode:
		return nil

	case *ast.DocumentNode:
		return y.decode(v.Body)

	case *ast.AnchorNode:
		y.anchors[yamlText(v.Name)] = v.Value

		return y.decode(v.Value)

	case *ast.AliasNode:
		return y.decode(y.anchors[yamlText(v.Value)])

	case *ast.TagNode:
		return y.decode(v.Value)

	case *ast.MappingNode:
		chain := make([]*Node, 0, len(v.Values))
		for _, mv := range v.Values {
			chain = append(chain, y.decode(mv))
		}

		return NewChain(chain...)

	case *ast.MappingValueNode:
		return New(yamlText(v.Key)).WithChildren(y.decode(v.Value))

	case *ast.SequenceNode:
		chain := make([]*Node, 0, len(v.Values))
		for _, c := range v.Values {
			chain = append(chain, y.decode(c))
		}

		return NewChain(chain...)

	default:
		return New(yamlText(n))
	}
}

// yamlText returns the literal text of a scalar node. Quoted and block
// strings yield their content without quotes or indicators.
func yamlText(n ast.Node) string {
	switch v := n.(type) {
	case nil:
		return ""
	case *ast.StringNode:
		return v.Value
	case *ast.LiteralNode:
		return v.Value.Value
	case *ast.AnchorNode:
		return yamlText(v.Value)
	case *ast.TagNode:
		return yamlText(v.Value)
	case *ast.MappingKeyNode:
		return yamlText(v.Value)
	default:
		if tk := n.GetToken(); tk != nil {
			return tk.Value
		}

		return n.String()
	}
}
