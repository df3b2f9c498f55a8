package node

import (
	"slices"
	"testing"
)

func chainValues(chain *Node) []string {
	var out []string
	for c := range chain.All() {
		out = append(out, c.Value())
	}

	return out
}

func TestIsProperty(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"defs", true},
		{"x", true},
		{"label-text", true},
		{"Widget", false},
		{"@", false},
		{"42", false},
		{"", false},
		{"_x", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := New(tt.value).IsProperty(); got != tt.want {
				t.Errorf("IsProperty(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}

	var nilNode *Node
	if nilNode.IsProperty() {
		t.Error("nil node should not be a property")
	}
}

func TestNewChain(t *testing.T) {
	ab := NewChain(New("a"), New("b"))
	chain := NewChain(nil, ab, New("c"), nil, New("d"))

	if got, want := chainValues(chain), []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("NewChain = %v, want %v", got, want)
	}

	if chain.Len() != 4 || chain.Last().Value() != "d" {
		t.Errorf("Len = %d, Last = %q", chain.Len(), chain.Last().Value())
	}

	if NewChain() != nil {
		t.Error("empty NewChain should be nil")
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := NewChain(
		New("Widget").WithChildren(New("x").WithChildren(New("1"))),
		New("tail"),
	)

	clone := orig.CloneChain()
	if !clone.Equal(orig) {
		t.Fatalf("clone %s differs from %s", clone, orig)
	}

	clone.Children().Children().SetValue("2")
	clone.Next().SetValue("other")

	if got := orig.String(); got != "Widget{x{1}} tail" {
		t.Errorf("mutating the clone changed the original: %s", got)
	}

	single := orig.Clone()
	if single.Next() != nil {
		t.Error("Clone should not copy siblings")
	}

	if !single.Children().Equal(orig.Children()) {
		t.Error("Clone should copy children")
	}
}

func TestFindProperty(t *testing.T) {
	chain := NewChain(New("Widget"), New("x").WithChildren(New("1")), New("x"), New("y"))

	if got := chain.FindProperty("x"); got != chain.Next() {
		t.Errorf("FindProperty returned %v, want first x", got)
	}

	if got := chain.FindProperty("z"); got != nil {
		t.Errorf("FindProperty(z) = %v, want nil", got)
	}

	if got := chain.FindProperty("Widget"); got != nil {
		t.Error("bare values are not properties")
	}

	parent := New("P").WithChildren(chain)
	if parent.Child("y") != chain.Last() {
		t.Error("Child did not find y")
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name string
		with *Node
		want string
		last string
	}{
		{
			name: "single value",
			with: New("v"),
			want: "a v c",
			last: "v",
		},
		{
			name: "value with children",
			with: New("W").WithChildren(New("k")),
			want: "a W{k} c",
			last: "W",
		},
		{
			name: "chain",
			with: NewChain(New("1"), New("2"), New("3")),
			want: "a 1 2 3 c",
			last: "3",
		},
		{
			name: "nil",
			with: nil,
			want: "a @{x} c",
			last: "@",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(New("a"), New("@").WithChildren(New("x")), New("c"))

			last := chain.Next().Replace(tt.with)

			if got := chain.String(); got != tt.want {
				t.Errorf("chain = %q, want %q", got, tt.want)
			}

			if last.Value() != tt.last {
				t.Errorf("last = %q, want %q", last.Value(), tt.last)
			}

			if last.Next().Value() != "c" {
				t.Errorf("replacement not followed by original next")
			}

			if tt.with != nil && tt.with.Next() != nil && tt.with.Next() == chain.Next().Next() {
				t.Error("Replace must copy spliced siblings")
			}
		})
	}
}

func TestSpliceOperations(t *testing.T) {
	chain := NewChain(New("a"), New("d"))

	chain.InsertNext(NewChain(New("b"), New("c")))

	if got := chain.String(); got != "a b c d" {
		t.Fatalf("InsertNext: %q", got)
	}

	tail := chain.Next().ChopNext()
	if chain.String() != "a b" || tail.String() != "c d" {
		t.Errorf("ChopNext: head %q tail %q", chain, tail)
	}

	chain.Next().SetNext(New("z"))
	if chain.String() != "a b z" {
		t.Errorf("SetNext: %q", chain)
	}

	p := New("P").WithChildren(New("x"))

	removed := p.RemoveChildren()
	if p.HasChildren() || removed.Value() != "x" {
		t.Errorf("RemoveChildren: %v %v", p, removed)
	}

	p.SetChildren(removed)
	if p.String() != "P{x}" {
		t.Errorf("SetChildren: %q", p)
	}

	// Insert of nil is a no-op.
	p.InsertNext(nil)
	if p.Next() != nil {
		t.Error("InsertNext(nil) changed the chain")
	}
}

func TestEqual(t *testing.T) {
	a := NewChain(New("A").WithChildren(New("x")), New("b"))

	tests := []struct {
		name  string
		other *Node
		want  bool
	}{
		{"same", NewChain(New("A").WithChildren(New("x")), New("b")), true},
		{"different value", NewChain(New("A").WithChildren(New("y")), New("b")), false},
		{"shorter", New("A").WithChildren(New("x")), false},
		{"missing children", NewChain(New("A"), New("b")), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Equal(tt.other); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}

	var nilNode *Node
	if !nilNode.Equal(nil) {
		t.Error("two empty chains should be equal")
	}
}
