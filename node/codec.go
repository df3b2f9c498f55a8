package node

import (
	"log/slog"

	"github.com/fxamacker/cbor/v2"
)

// cborEntry is the wire form of one node: [value, children].
type cborEntry struct {
	_        struct{} `cbor:",toarray"`
	Value    string
	Children []cborEntry
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

// maxCBORNesting bounds decoding; each document level takes two CBOR
// nesting levels.
const maxCBORNesting = 1024

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("node: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxNestedLevels: maxCBORNesting,
	}.DecMode()
	if err != nil {
		panic("node: CBOR decoder initialization failed: " + err.Error())
	}
}

func toEntries(chain *Node) []cborEntry {
	if chain == nil {
		return nil
	}

	out := make([]cborEntry, 0, chain.Len())
	for c := chain; c != nil; c = c.next {
		out = append(out, cborEntry{Value: c.value, Children: toEntries(c.children)})
	}

	return out
}

func fromEntries(entries []cborEntry) *Node {
	var head, tail *Node

	for _, e := range entries {
		n := &Node{value: e.Value, children: fromEntries(e.Children)}

		if head == nil {
			head = n
		} else {
			tail.next = n
		}

		tail = n
	}

	return head
}

// MarshalCBOR encodes the chain starting at n as a CBOR array of
// [value, children] pairs using core deterministic encoding.
func (n *Node) MarshalCBOR() ([]byte, error) {
	entries := toEntries(n)
	if entries == nil {
		entries = []cborEntry{}
	}

	data, err := encMode.Marshal(entries)
	if err != nil {
		return nil, ErrEncode.Wrap(err).With(slog.String("format", "cbor"))
	}

	return data, nil
}

// UnmarshalCBOR replaces n with the first node of the decoded chain and
// links the remaining nodes after it. An empty chain is an error; use
// [DecodeCBOR] when the input may be empty.
func (n *Node) UnmarshalCBOR(data []byte) error {
	chain, err := DecodeCBOR(data)
	if err != nil {
		return err
	}

	if chain == nil {
		return ErrDecode.With(slog.String("format", "cbor"),
			slog.String("reason", "empty chain"))
	}

	*n = *chain

	return nil
}

// DecodeCBOR decodes a chain encoded by [Node.MarshalCBOR].
func DecodeCBOR(data []byte) (*Node, error) {
	var entries []cborEntry
	if err := decMode.Unmarshal(data, &entries); err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("format", "cbor"))
	}

	return fromEntries(entries), nil
}
