package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset   = "\033[0m"
	ansiGray    = "\033[90m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// prettyHandler writes colorized key=value records. Attribute keys added
// through groups are joined with '.'.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	prefix string
	attrs  []byte
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	lvl := slog.LevelInfo
	if h.opts.Level != nil {
		lvl = h.opts.Level.Level()
	}

	return level >= lvl
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		h.write(&buf, "", slog.Time(slog.TimeKey, r.Time))
	}

	h.write(&buf, "", slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			h.write(&buf, "", slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	h.write(&buf, "", slog.String(slog.MessageKey, r.Message))

	if len(h.attrs) > 0 {
		buf.Write(h.attrs)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.write(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer

	buf.Write(h.attrs)

	for _, a := range attrs {
		h.write(&buf, h.prefix, a)
	}

	c := *h
	c.attrs = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) write(buf *bytes.Buffer, prefix string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(nil, a)
	}

	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.write(buf, p, g)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(ansiGray + prefix + a.Key + ansiReset + "=")
	buf.WriteString(colorize(a.Key, a.Value))
}

func colorize(key string, v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		return ansiYellow + strconv.FormatInt(v.Int64(), 10) + ansiReset
	case slog.KindUint64:
		return ansiYellow + strconv.FormatUint(v.Uint64(), 10) + ansiReset
	case slog.KindFloat64:
		return ansiYellow + strconv.FormatFloat(v.Float64(), 'g', -1, 64) + ansiReset
	case slog.KindBool:
		if v.Bool() {
			return ansiGreen + "true" + ansiReset
		}

		return ansiRed + "false" + ansiReset
	case slog.KindDuration:
		return ansiMagenta + v.Duration().String() + ansiReset
	case slog.KindTime:
		return ansiBlue + v.Time().Format(time.RFC3339) + ansiReset
	}

	s := v.String()

	if key == slog.LevelKey {
		switch {
		case strings.HasPrefix(s, "ERROR"):
			return ansiRed + s + ansiReset
		case strings.HasPrefix(s, "WARN"):
			return ansiYellow + s + ansiReset
		case strings.HasPrefix(s, "INFO"):
			return ansiGreen + s + ansiReset
		default:
			return ansiBlue + s + ansiReset
		}
	}

	if key == slog.MessageKey {
		return s
	}

	if strings.ContainsAny(s, " \t\n\"=") {
		s = strconv.Quote(s)
	}

	return ansiCyan + s + ansiReset
}

// indentWriter reformats each JSON record written to it with indentation.
// The slog JSON handler emits a whole record per Write.
type indentWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (iw *indentWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer

	if err := json.Indent(&buf, bytes.TrimSpace(p), "", "  "); err != nil {
		buf.Reset()
		buf.Write(p)
	} else {
		buf.WriteByte('\n')
	}

	iw.mu.Lock()
	defer iw.mu.Unlock()

	if _, err := iw.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}

	return len(p), nil
}
