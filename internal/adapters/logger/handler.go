package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/dmc/internal/ui/output"
	"go.trai.ch/dmc/internal/ui/style"
)

// fingerprintKey is the attribute whose value is abbreviated in console output.
const fingerprintKey = "fingerprint"

const shortFingerprintLen = 12

type levelStyle struct {
	min    slog.Level
	prefix string
	color  termenv.Color
}

// levelStyles is ordered from the most to the least severe level.
var levelStyles = []levelStyle{
	{min: slog.LevelError, prefix: style.Cross + " ", color: termenv.RGBColor(string(style.Red))},
	{min: slog.LevelWarn, prefix: style.Warning + " ", color: termenv.RGBColor(string(style.Yellow))},
	{min: slog.LevelInfo, prefix: "", color: termenv.RGBColor(string(style.Slate))},
}

var debugStyle = levelStyle{prefix: style.Dot + " ", color: termenv.RGBColor(string(style.Mist))}

func styleFor(level slog.Level) levelStyle {
	for _, s := range levelStyles {
		if level >= s.min {
			return s
		}
	}
	return debugStyle
}

// PrettyHandler is a slog.Handler printing one colored line per record.
// Derived handlers share the output and its mutex.
type PrettyHandler struct {
	out    *termenv.Output
	mu     *sync.Mutex
	level  slog.Leveler
	prefix string
	attrs  []string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		mu:    &sync.Mutex{},
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	s := styleFor(r.Level)

	var b strings.Builder
	b.WriteString(s.prefix)
	b.WriteString(r.Message)
	for _, attr := range h.attrs {
		b.WriteByte(' ')
		b.WriteString(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		if formatted, ok := formatAttr(h.prefix, attr); ok {
			b.WriteByte(' ')
			b.WriteString(formatted)
		}
		return true
	})

	line := h.out.String(b.String()).Foreground(s.color).String() + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(line)
	return err
}

// WithAttrs returns a Handler that appends attrs to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, attr := range attrs {
		if formatted, ok := formatAttr(h.prefix, attr); ok {
			next.attrs = append(next.attrs, formatted)
		}
	}
	return next
}

// WithGroup returns a Handler that qualifies subsequent keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:    h.out,
		mu:     h.mu,
		level:  h.level,
		prefix: h.prefix,
		attrs:  append([]string(nil), h.attrs...),
	}
}

// formatAttr renders attr as key=value. Empty attributes are dropped.
func formatAttr(prefix string, attr slog.Attr) (string, bool) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return "", false
	}
	return prefix + attr.Key + "=" + formatValue(attr.Key, attr.Value), true
}

func formatValue(key string, v slog.Value) string {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindString:
		s := v.String()
		if key == fingerprintKey && len(s) > shortFingerprintLen {
			return s[:shortFingerprintLen]
		}
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
		return s
	default:
		return v.String()
	}
}
