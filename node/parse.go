package node

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/inflate/pkg"
)

// ParseString parses a chain from native document text.
func ParseString(ctx context.Context, s string, opts ...Option) (*Node, error) {
	return Parse(ctx, []byte(s), opts...)
}

// Parse parses a chain from native document text. A document containing only
// whitespace and comments yields a nil chain.
func Parse(ctx context.Context, data []byte, opts ...Option) (*Node, error) {
	cfg := makeConfig(opts...)

	p := &parser{
		input:  data,
		line:   1,
		col:    1,
		source: cfg.source,
	}

	chain, err := p.parseChain(false)
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.String("source", cfg.source),
		slog.Int("bytes", len(data)),
		slog.Int("nodes", chain.Len()))

	return chain, nil
}

type parser struct {
	input  []byte
	pos    int
	line   int
	col    int
	source string
}

// parseChain parses sibling nodes until end of input or, inside a body, the
// closing brace.
func (p *parser) parseChain(inBody bool) (*Node, error) {
	var head, tail *Node

	for {
		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}

		if p.eof() {
			if inBody {
				return nil, p.fail(p.position(), "unterminated body")
			}

			return head, nil
		}

		switch p.peek() {
		case '}':
			if !inBody {
				return nil, p.fail(p.position(), "unbalanced '}'")
			}

			p.advance()

			return head, nil

		case '{':
			return nil, p.fail(p.position(), "body without a value")
		}

		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}

		if head == nil {
			head = n
		} else {
			tail.next = n
		}

		tail = n
	}
}

// parseNode parses: Value ('{' Chain '}')?.
func (p *parser) parseNode() (*Node, error) {
	var (
		value string
		err   error
	)

	if p.peek() == '"' {
		value, err = p.parseQuoted()
		if err != nil {
			return nil, err
		}
	} else {
		value = p.parseBare()
	}

	n := New(value)

	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}

	if p.expect('{') {
		n.children, err = p.parseChain(true)
		if err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (p *parser) parseBare() string {
	start := p.pos

	for !p.eof() {
		r := p.peek()
		if unicode.IsSpace(r) || r == '{' || r == '}' || r == '"' ||
			p.atComment() {
			break
		}

		p.advance()
	}

	return string(p.input[start:p.pos])
}

func (p *parser) parseQuoted() (string, error) {
	start := p.position()

	p.advance() // opening quote

	var sb strings.Builder

	for {
		if p.eof() {
			return "", p.fail(start, "unterminated string")
		}

		r := p.peek()
		p.advance()

		switch r {
		case '"':
			return sb.String(), nil

		case '\\':
			if p.eof() {
				return "", p.fail(start, "unterminated string")
			}

			esc := p.peek()
			pos := p.position()
			p.advance()

			switch esc {
			case '"', '\\':
				sb.WriteRune(esc)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				return "", p.fail(pos, "invalid escape '\\"+string(esc)+"'")
			}

		default:
			sb.WriteRune(r)
		}
	}
}

func (p *parser) atComment() bool {
	if p.peek() != '/' || p.pos+1 >= len(p.input) {
		return false
	}

	c := p.input[p.pos+1]

	return c == '/' || c == '*'
}

func (p *parser) skipSpaceAndComments() error {
	for !p.eof() {
		switch {
		case unicode.IsSpace(p.peek()):
			p.advance()

		case p.atComment() && p.input[p.pos+1] == '/':
			for !p.eof() && p.peek() != '\n' {
				p.advance()
			}

		case p.atComment():
			start := p.position()

			p.advance()
			p.advance()

			for {
				if p.eof() {
					return p.fail(start, "unterminated comment")
				}

				if p.peek() == '*' && p.pos+1 < len(p.input) &&
					p.input[p.pos+1] == '/' {
					p.advance()
					p.advance()

					break
				}

				p.advance()
			}

		default:
			return nil
		}
	}

	return nil
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) expect(r rune) bool {
	if p.peek() == r {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) position() pkg.Position {
	return pkg.Position{Offset: p.pos, Line: p.line, Column: p.col}
}

func (p *parser) fail(pos pkg.Position, reason string) error {
	err := ErrParse.WithPosition(pos).With(slog.String("reason", reason))
	if p.source != "" {
		err = err.With(slog.String("source", p.source))
	}

	return err
}
