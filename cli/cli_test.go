package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/inflate/inflate"
	"github.com/ardnew/inflate/log"
)

func TestLogScan(t *testing.T) {
	defer log.SetDefault(log.Default())

	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		pretty bool
		caller bool
	}{
		{
			name:   "separate values",
			args:   []string{"--log-level", "debug", "--log-format", "json"},
			level:  "debug",
			format: "json",
			pretty: true,
		},
		{
			name:   "assigned values",
			args:   []string{"fmt", "--log-level=warn", "--no-log-pretty", "--log-caller"},
			level:  "warn",
			pretty: false,
			caller: true,
		},
		{
			name:   "explicit booleans",
			args:   []string{"--log-pretty=false", "--no-log-caller=false"},
			pretty: false,
			caller: true,
		},
		{
			name:   "stops at terminator",
			args:   []string{"--", "--log-level=error"},
			pretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format {
				t.Errorf("level, format = %q, %q, want %q, %q",
					f.Level, f.Format, tt.level, tt.format)
			}

			if f.Pretty != tt.pretty || f.Caller != tt.caller {
				t.Errorf("pretty, caller = %v, %v, want %v, %v",
					f.Pretty, f.Caller, tt.pretty, tt.caller)
			}
		})
	}
}

func TestRun(t *testing.T) {
	defer log.SetDefault(log.Default())

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	if err := mkdirAllRequired(); err != nil {
		t.Fatal(err)
	}

	lib := t.TempDir()
	if err := os.WriteFile(filepath.Join(lib, "lib.node"), []byte(`defs{ T{ Widget } }`), 0o600); err != nil {
		t.Fatal(err)
	}

	conf := "config{ log-level{error} include-path{" + lib + "} }"
	if err := os.WriteFile(configPath(baseConfig), []byte(conf), 0o600); err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(t.TempDir(), "doc.node")

	exit := func(code int) { t.Fatalf("unexpected exit %d", code) }

	t.Run("include from configured path", func(t *testing.T) {
		if err := os.WriteFile(src, []byte(`include{lib.node} T`), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := Run(context.Background(), exit, src); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	})

	t.Run("fmt", func(t *testing.T) {
		if err := Run(context.Background(), exit, "fmt", "json", "--indent=0", src); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	})

	t.Run("inflate error", func(t *testing.T) {
		if err := os.WriteFile(src, []byte(`Buton`), 0o600); err != nil {
			t.Fatal(err)
		}

		err := Run(context.Background(), exit, "inflate", "--format=json", src)
		if !errors.Is(err, inflate.ErrUnknownType) {
			t.Errorf("Run() error = %v, want ErrUnknownType", err)
		}
	})
}
