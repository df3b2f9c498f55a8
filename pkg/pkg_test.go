package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "inflate" {
		t.Errorf("Expected Name to be %q, got %q", "inflate", Name)
	}

	if got := EnvPrefix(); got != "INFLATE_" {
		t.Errorf("Expected EnvPrefix to be %q, got %q", "INFLATE_", got)
	}
}

func TestVersion(t *testing.T) {
	// VERSION lives next to this file; tests run from the package directory.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version() != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version())
	}
}

func TestError_IsSentinel(t *testing.T) {
	errA := NewError("a failed")
	errB := NewError("b failed")

	derived := errA.With(slog.String("name", "x")).Wrap(errors.New("cause"))

	if !errors.Is(derived, errA) {
		t.Error("derived error should match its sentinel")
	}

	if errors.Is(derived, errB) {
		t.Error("derived error should not match an unrelated sentinel")
	}

	wrapped := fmt.Errorf("outer: %w", derived)
	if !errors.Is(wrapped, errA) {
		t.Error("fmt-wrapped error should still match the sentinel")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"message only", NewError("boom"), "boom"},
		{"wrapped", NewError("boom").Wrap(errors.New("cause")), "boom: cause"},
		{"cause only", WrapError(errors.New("cause")), "cause"},
		{
			"attributes",
			NewError("boom").With(slog.String("name", "x")),
			"boom (name=x)",
		},
		{
			"position",
			NewError("boom").WithPosition(Position{Line: 2, Column: 5}),
			"boom (line=2, column=5)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_WithDoesNotMutate(t *testing.T) {
	base := NewError("boom")
	_ = base.With(slog.Int("n", 1))

	if len(base.Attrs()) != 0 {
		t.Errorf("sentinel gained attributes: %v", base.Attrs())
	}
}

func TestError_LogValue(t *testing.T) {
	err := NewError("boom").Wrap(errors.New("cause")).With(slog.Int("n", 3))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}

	keys := map[string]bool{}
	for _, a := range v.Group() {
		keys[a.Key] = true
	}

	for _, k := range []string{"error", "cause", "n"} {
		if !keys[k] {
			t.Errorf("LogValue missing key %q", k)
		}
	}
}
