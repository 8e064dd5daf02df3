package logging

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/isseis/go-debuginfo-check/internal/color"
	"github.com/isseis/go-debuginfo-check/internal/terminal"
)

// NewConsoleHandler returns the handler for diagnostics on w. A colour-capable
// stream gets ColorHandler; anything else gets a plain slog.TextHandler so
// that redirected stderr stays machine-parsable.
func NewConsoleHandler(w io.Writer, caps terminal.Capabilities, level slog.Leveler) slog.Handler {
	if !caps.Color {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	return NewColorHandler(w, level)
}

// ColorHandler writes one line per record: a coloured level, the message and
// key=value attributes. There is no timestamp; the line is for a human
// watching the run.
type ColorHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewColorHandler creates a ColorHandler. A nil level means INFO.
func NewColorHandler(w io.Writer, level slog.Leveler) *ColorHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ColorHandler{mu: &sync.Mutex{}, writer: w, level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ColorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
func (h *ColorHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(formatLevel(r.Level))
	sb.WriteString(" ")
	sb.WriteString(r.Message)

	prefix := h.groupPrefix()
	for _, attr := range h.attrs {
		appendAttr(&sb, "", attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		appendAttr(&sb, prefix, attr)
		return true
	})
	sb.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, sb.String())
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	prefix := h.groupPrefix()
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, attr := range attrs {
		attr.Key = prefix + attr.Key
		newAttrs = append(newAttrs, attr)
	}

	clone := *h
	clone.attrs = newAttrs
	return &clone
}

// WithGroup returns a new handler with an additional group.
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	clone := *h
	clone.groups = newGroups
	return &clone
}

func (h *ColorHandler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// formatLevel pads the level name to a fixed width before colouring it.
func formatLevel(level slog.Level) string {
	name := level.String()
	if len(name) < len("ERROR") {
		name += strings.Repeat(" ", len("ERROR")-len(name))
	}
	return color.ForLevel(level)(name)
}

func appendAttr(sb *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	sb.WriteString(" ")
	sb.WriteString(prefix)
	sb.WriteString(attr.Key)
	sb.WriteString("=")
	sb.WriteString(formatValue(attr.Value))
}

// formatValue formats a slog.Value for display
func formatValue(value slog.Value) string {
	switch value.Kind() {
	case slog.KindString:
		s := value.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
		return s
	case slog.KindTime:
		return value.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return value.Duration().String()
	case slog.KindGroup:
		attrs := value.Group()
		if len(attrs) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			parts = append(parts, attr.Key+"="+formatValue(attr.Value.Resolve()))
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return value.String()
	}
}
