package node

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseReaderCache(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	const src = "Widget{x{1}}"

	first, err := ParseReader(context.Background(), strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	first.Children().SetValue("mutated")

	second, err := ParseReader(context.Background(), strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	if got := second.String(); got != src {
		t.Errorf("cached result was affected by a caller mutation: %q", got)
	}

	if first.Children() == second.Children() {
		t.Error("ParseReader returned shared nodes")
	}
}

func TestParseReaderErrors(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	_, err := ParseReader(context.Background(), iotest.ErrReader(errors.New("boom")))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("read failure error = %v, want ErrReadInput", err)
	}

	for range 2 {
		_, err = ParseReader(context.Background(), strings.NewReader("a{"))
		if !errors.Is(err, ErrParse) {
			t.Errorf("parse failure error = %v, want ErrParse", err)
		}
	}
}
