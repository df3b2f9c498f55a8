package inflate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/inflate/node"
)

// object is what the test factories produce.
type object struct {
	Type     string
	Body     string
	Children []*object
}

func leaf(typ string) Factory {
	return FactoryFunc(func(_ context.Context, _ *Inflater, children *node.Node) (any, error) {
		return &object{Type: typ, Body: children.String()}, nil
	})
}

func container(typ string) Factory {
	return FactoryFunc(func(ctx context.Context, in *Inflater, children *node.Node) (any, error) {
		obj := &object{Type: typ}

		for c := range children.All() {
			if c.IsProperty() {
				continue
			}

			v, err := in.Inflate(ctx, c)
			if err != nil {
				return nil, err
			}

			obj.Children = append(obj.Children, v.(*object))
		}

		return obj, nil
	})
}

var errFactory = errors.New("factory failed")

func newTestInflater(t *testing.T, opts ...Option) *Inflater {
	t.Helper()

	in := New(opts...)

	for name, f := range map[string]Factory{
		"Widget":    leaf("Widget"),
		"Container": container("Container"),
		"Box":       container("Box"),
		"Fail": FactoryFunc(func(context.Context, *Inflater, *node.Node) (any, error) {
			return nil, errFactory
		}),
	} {
		if err := in.Register(name, f); err != nil {
			t.Fatal(err)
		}
	}

	return in
}

func inflateString(t *testing.T, in *Inflater, doc string) (*object, error) {
	t.Helper()

	v, err := in.InflateString(context.Background(), doc)
	if err != nil {
		return nil, err
	}

	if v == nil {
		return nil, nil
	}

	return v.(*object), nil
}

func TestInflateScenarios(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		typ  string
		body string
	}{
		{
			name: "global variable",
			doc:  `defs{ greeting{ "hi" } } Widget{ text{@{greeting}} }`,
			typ:  "Widget",
			body: "text{hi}",
		},
		{
			name: "positional template argument",
			doc:  `defs{ Btn{ label Widget{ caption{@{label}} } } } Btn{ "OK" }`,
			typ:  "Widget",
			body: "caption{OK}",
		},
		{
			name: "named template argument",
			doc:  `defs{ Btn{ label Widget{ caption{@{label}} } } } Btn{ label{ "Hi" } }`,
			typ:  "Widget",
			body: "caption{Hi}",
		},
		{
			name: "argument with extra properties",
			doc:  `defs{ Btn{ label Widget{ caption{@{label}} } } } Btn{ "OK" color{red} }`,
			typ:  "Widget",
			body: "color{red} caption{OK}",
		},
		{
			name: "argument from reference",
			doc:  `defs{ t{Yes} Btn{ label Widget{ caption{@{label}} } } } Btn{ @{t} }`,
			typ:  "Widget",
			body: "caption{Yes}",
		},
		{
			name: "argument beside template properties",
			doc:  `defs{ Card{ body Widget{ @{body} title{x} } } } Card{ Thing title{y} }`,
			typ:  "Widget",
			body: "Thing title{y}",
		},
		{
			name: "argument wins over local defs",
			doc:  `defs{ Btn{ label Widget{ caption{@{label}} } } } Btn{ defs{ label{X} } "OK" }`,
			typ:  "Widget",
			body: "defs{label{X}} caption{OK}",
		},
		{
			name: "unbound argument falls through",
			doc:  `defs{ label{outer} } defs{ Btn{ label Widget{ caption{@{label}} } } } Btn`,
			typ:  "Widget",
			body: "caption{outer}",
		},
		{
			name: "template inheritance",
			doc:  `defs{ A{ Widget{ p{1} q{3} } } } defs{ B{ A{ p{2} } } } B`,
			typ:  "Widget",
			body: "p{2} q{3}",
		},
		{
			name: "inheritance within one block",
			doc:  `defs{ A{ Widget{ p{1} } } B{ A{ p{2} } } } B`,
			typ:  "Widget",
			body: "p{2}",
		},
		{
			name: "second definition ignored",
			doc:  `defs{ T{ Widget{a{1}} Other{b{2}} } } T`,
			typ:  "Widget",
			body: "a{1}",
		},
		{
			name: "earlier variable in same block",
			doc:  `defs{ a{1} b{@{a}} } Widget{ t{@{b}} }`,
			typ:  "Widget",
			body: "t{1}",
		},
		{
			name: "later variable in same block",
			doc:  `defs{ b{@{a}} a{1} } Widget{ t{@{b}} }`,
			typ:  "Widget",
			body: "t{@{a}}",
		},
		{
			name: "single pass substitution",
			doc:  `defs{ b{@{c}} } defs{ c{1} } Widget{ t{@{b}} }`,
			typ:  "Widget",
			body: "t{@{c}}",
		},
		{
			name: "missing variable tolerated",
			doc:  `Widget{ t{@{nope}} }`,
			typ:  "Widget",
			body: "t{@{nope}}",
		},
		{
			name: "chain value splices",
			doc:  `defs{ size{10 20} } Widget{ s{@{size}} }`,
			typ:  "Widget",
			body: "s{10 20}",
		},
		{
			name: "local defs",
			doc:  `Widget{ defs{ c{blue} } color{@{c}} }`,
			typ:  "Widget",
			body: "defs{c{blue}} color{blue}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInflater(t)

			obj, err := inflateString(t, in, tt.doc)
			if err != nil {
				t.Fatalf("Inflate: %v", err)
			}

			if obj.Type != tt.typ || obj.Body != tt.body {
				t.Errorf("got %s{%s}, want %s{%s}", obj.Type, obj.Body, tt.typ, tt.body)
			}
		})
	}
}

func TestInflateScopeShadowing(t *testing.T) {
	in := newTestInflater(t)

	obj, err := inflateString(t, in, `
		defs{ x{outer} T{ Widget{ v{@{x}} } } }
		Container{
			T
			Box{
				defs{ x{inner} }
				T
			}
			T
		}`)
	if err != nil {
		t.Fatal(err)
	}

	if len(obj.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(obj.Children))
	}

	got := []string{
		obj.Children[0].Body,
		obj.Children[1].Children[0].Body,
		obj.Children[2].Body,
	}

	want := []string{"v{outer}", "v{inner}", "v{outer}"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestVariableFrames(t *testing.T) {
	ctx := context.Background()
	in := New()

	if err := in.pushVariables(ctx, mustParse(t, "x{outer} y{kept}")); err != nil {
		t.Fatal(err)
	}

	if err := in.pushVariables(ctx, mustParse(t, "x{inner}")); err != nil {
		t.Fatal(err)
	}

	if v, _ := in.FindVariable("x"); v.String() != "inner" {
		t.Errorf("x = %s, want inner", v)
	}

	if v, _ := in.FindVariable("y"); v.String() != "kept" {
		t.Errorf("y = %s, want kept", v)
	}

	in.popVariables(ctx)

	if v, _ := in.FindVariable("x"); v.String() != "outer" {
		t.Errorf("x after pop = %s, want outer", v)
	}

	in.popVariables(ctx)

	if _, ok := in.FindVariable("x"); ok {
		t.Error("x found after popping every frame")
	}
}

func TestTemplateVars(t *testing.T) {
	ctx := context.Background()
	in := New()

	decls := mustParse(t, `
		Base{ color size Widget{ c{@{color}} } }
		Btn{ label color Base{ t{@{label}} } }`)

	if err := in.pushTemplates(ctx, decls); err != nil {
		t.Fatal(err)
	}

	btn, ok := in.FindTemplate("Btn")
	if !ok {
		t.Fatal("Btn not found")
	}

	if got := strings.Join(btn.Vars, ","); got != "label,color,size" {
		t.Errorf("Vars = %s, want label,color,size", got)
	}

	if btn.Type() != "Widget" || !btn.HasVar("size") || btn.HasVar("c") {
		t.Errorf("unexpected template %s %v", btn.Type(), btn.Vars)
	}

	if got := btn.Definition.Children().String(); got != "t{@{label}} c{@{color}}" {
		t.Errorf("body = %s", got)
	}
}

func TestInflateTemplateIsEager(t *testing.T) {
	in := newTestInflater(t)

	obj, err := inflateString(t, in, `
		defs{ A{ Widget{ p{1} } } }
		defs{ B{ A{ p{2} r{5} } } }
		Container{
			defs{ A{ Widget{ p{9} s{0} } } }
			B
			A
		}`)
	if err != nil {
		t.Fatal(err)
	}

	if got := obj.Children[0].Body; got != "p{2} r{5}" {
		t.Errorf("B = %s, want p{2} r{5}", got)
	}

	if got := obj.Children[1].Body; got != "p{9} s{0}" {
		t.Errorf("A = %s, want p{9} s{0}", got)
	}
}

func TestInflateErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"declaration before object", `color{red} Widget`, ErrMalformedDeclaration},
		{"unknown type", `Widgt`, ErrUnknownType},
		{"reference with two names", `Widget{ t{@{a b}} }`, ErrMalformedReference},
		{"reference without name", `Widget{ t{@} }`, ErrMalformedReference},
		{"reference name with children", `Widget{ t{@{a{b}}} }`, ErrMalformedReference},
		{"duplicate variable", `defs{ a{1} a{2} } Widget`, ErrDuplicateRegistration},
		{"duplicate template", `defs{ T{Widget} T{Widget} } Widget`, ErrDuplicateRegistration},
		{"template without body", `defs{ T } Widget`, ErrMalformedTemplate},
		{"template without definition", `defs{ T{ label } } T`, ErrMalformedTemplate},
		{"template argument with children", `defs{ T{ arg{x} Widget } } T`, ErrMalformedTemplate},
		{"malformed reference in defs", `defs{ a{@} } Widget`, ErrMalformedReference},
		{"factory error", `Container{ Box{ Fail } }`, errFactory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInflater(t)

			_, err := inflateString(t, in, tt.doc)
			if !errors.Is(err, tt.err) {
				t.Errorf("error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestInflateUnknownTypeSuggests(t *testing.T) {
	in := newTestInflater(t)

	_, err := inflateString(t, in, "Widgt")
	if err == nil || !strings.Contains(err.Error(), "Widget") {
		t.Errorf("error %v should suggest Widget", err)
	}
}

func TestInflateScopeCleanup(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		fail bool
	}{
		{"leading defs", `defs{ x{1} T{Widget} } Widget`, false},
		{"factory error", `defs{ x{1} } Container{ defs{ y{2} } Box{ defs{ z{3} } Fail } }`, true},
		{"template argument frame", `defs{ Btn{ label Fail } } Btn{ "OK" }`, true},
		{"nothing to inflate", `defs{ x{1} }`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInflater(t)

			_, err := inflateString(t, in, tt.doc)
			if (err != nil) != tt.fail {
				t.Fatalf("error = %v, want failure %v", err, tt.fail)
			}

			if n := in.templates.len(); n != 0 {
				t.Errorf("%d template frames left", n)
			}

			if n := in.variables.len(); n != 0 {
				t.Errorf("%d variable frames left", n)
			}

			if _, ok := in.FindVariable("x"); ok {
				t.Error("variable x still visible")
			}
		})
	}
}

func TestInflateNothing(t *testing.T) {
	in := newTestInflater(t)

	for _, doc := range []string{"", "defs{ x{1} }", "// only a comment"} {
		v, err := in.InflateString(context.Background(), doc)
		if v != nil || err != nil {
			t.Errorf("InflateString(%q) = %v, %v; want nil, nil", doc, v, err)
		}
	}
}

func TestInflateMaxDepth(t *testing.T) {
	doc := `Container{ Container{ Widget } }`

	in := newTestInflater(t, WithMaxDepth(2))
	if _, err := inflateString(t, in, doc); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("error = %v, want ErrMaxDepthExceeded", err)
	}

	in = newTestInflater(t, WithMaxDepth(3))
	if _, err := inflateString(t, in, doc); err != nil {
		t.Errorf("depth 3 should succeed: %v", err)
	}

	in = newTestInflater(t)
	if _, err := inflateString(t, in, doc); err != nil {
		t.Errorf("unlimited depth should succeed: %v", err)
	}
}

func TestRegistry(t *testing.T) {
	in := New()

	if err := in.Register("A", leaf("A")); err != nil {
		t.Fatal(err)
	}

	if err := in.Register("A", leaf("A")); !errors.Is(err, ErrDuplicateRegistration) {
		t.Errorf("duplicate Register error = %v", err)
	}

	if err := in.Register("B", leaf("B")); err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(in.Factories(), ","); got != "A,B" {
		t.Errorf("Factories() = %s", got)
	}

	if !in.Unregister("A") {
		t.Error("Unregister(A) = false")
	}

	if in.Unregister("A") {
		t.Error("second Unregister(A) = true")
	}

	if err := in.Register("A", leaf("A")); err != nil {
		t.Errorf("Register after Unregister: %v", err)
	}
}

func TestScopeStack(t *testing.T) {
	var s scope[int]

	s.push(map[string]int{"a": 1, "b": 1})
	s.push(map[string]int{"a": 2})

	if v, _ := s.find("a"); v != 2 {
		t.Errorf("inner a = %d, want 2", v)
	}

	if v, _ := s.find("b"); v != 1 {
		t.Errorf("outer b = %d, want 1", v)
	}

	s.pop()

	if v, _ := s.find("a"); v != 1 {
		t.Errorf("a after pop = %d, want 1", v)
	}

	s.truncate(0)

	if _, ok := s.find("a"); ok {
		t.Error("a found after truncate")
	}

	defer func() {
		if recover() == nil {
			t.Error("pop of empty stack should panic")
		}
	}()

	s.pop()
}

func TestInflateSources(t *testing.T) {
	doc := `defs{ g{hi} } Widget{ t{@{g}} }`

	t.Run("reader", func(t *testing.T) {
		in := newTestInflater(t)

		v, err := in.InflateReader(context.Background(), strings.NewReader(doc))
		if err != nil {
			t.Fatal(err)
		}

		if got := v.(*object).Body; got != "t{hi}" {
			t.Errorf("body = %s", got)
		}
	})

	t.Run("file with include", func(t *testing.T) {
		dir := t.TempDir()

		if err := os.WriteFile(filepath.Join(dir, "defs.node"), []byte("defs{ g{hi} }"), 0o600); err != nil {
			t.Fatal(err)
		}

		main := filepath.Join(dir, "main.node")
		if err := os.WriteFile(main, []byte("include{defs.node} Widget{ t{@{g}} }"), 0o600); err != nil {
			t.Fatal(err)
		}

		in := newTestInflater(t)

		v, err := in.InflateFile(context.Background(), main)
		if err != nil {
			t.Fatal(err)
		}

		if got := v.(*object).Body; got != "t{hi}" {
			t.Errorf("body = %s", got)
		}
	})
}
