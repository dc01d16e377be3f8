package instrument

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const maskedValue = "***"

func initLogging(serviceName string, lp *sdklog.LoggerProvider, maskFields []string) {
	slog.SetDefault(slog.New(newHandler(os.Stdout, serviceName, lp, maskFields)))
}

// newHandler builds the handler chain: context enrichment, then masking, then
// a fan out to stdout JSON and (when lp is set) the OTLP log exporter.
func newHandler(w io.Writer, serviceName string, lp *sdklog.LoggerProvider, maskFields []string) slog.Handler {
	sinks := fanout{slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		AddSource:   true,
		ReplaceAttr: renameAttr,
	})}
	if lp != nil {
		sinks = append(sinks, otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(lp)))
	}

	var next slog.Handler = sinks
	if m := NewMasker(maskFields); !m.Empty() {
		next = &maskHandler{Handler: sinks, masker: m}
	}

	return &contextHandler{Handler: next, serviceName: serviceName}
}

// renameAttr shortens the built-in keys and trims source paths to the part
// starting at internal/. Records logged from outside internal/ drop source.
func renameAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		return slog.Attr{Key: "ts", Value: a.Value}
	case slog.LevelKey:
		return slog.Attr{Key: "severity", Value: a.Value}
	case slog.SourceKey:
		src, ok := a.Value.Any().(*slog.Source)
		if !ok {
			return a
		}
		idx := strings.Index(src.File, "/internal/")
		if idx < 0 {
			return slog.Attr{}
		}
		return slog.String("file", path.Clean(src.File[idx+1:])+":"+strconv.Itoa(src.Line))
	}
	return a
}

// contextHandler adds the service name and the correlation ID found in ctx.
type contextHandler struct {
	slog.Handler
	serviceName string
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if cid := GetCorrelationID(ctx); cid != "" {
		r.AddAttrs(slog.String("_cID", cid))
	}
	if h.serviceName != "" {
		r.AddAttrs(slog.String("service", h.serviceName))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), serviceName: h.serviceName}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), serviceName: h.serviceName}
}

// fanout writes each record to every enabled handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	return lo.SomeBy(f, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return fanout(lo.Map(f, func(h slog.Handler, _ int) slog.Handler { return h.WithAttrs(attrs) }))
}

func (f fanout) WithGroup(name string) slog.Handler {
	return fanout(lo.Map(f, func(h slog.Handler, _ int) slog.Handler { return h.WithGroup(name) }))
}

// maskHandler rewrites record attributes through a Masker. Attributes bound
// earlier with Logger.With are masked as they are bound.
type maskHandler struct {
	slog.Handler
	masker Masker
}

func (h *maskHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.masker.attr(a))
		return true
	})
	return h.Handler.Handle(ctx, out)
}

func (h *maskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := lo.Map(attrs, func(a slog.Attr, _ int) slog.Attr { return h.masker.attr(a) })
	return &maskHandler{Handler: h.Handler.WithAttrs(masked), masker: h.masker}
}

func (h *maskHandler) WithGroup(name string) slog.Handler {
	return &maskHandler{Handler: h.Handler.WithGroup(name), masker: h.masker}
}

// Masker hides the values stored under a set of keys. Keys compare
// case-insensitively and are looked up at any nesting depth.
type Masker struct {
	keys map[string]struct{}
}

// NewMasker ignores blank entries in fields.
func NewMasker(fields []string) Masker {
	keys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			keys[f] = struct{}{}
		}
	}
	return Masker{keys: keys}
}

func (m Masker) Empty() bool { return len(m.keys) == 0 }

func (m Masker) Has(key string) bool {
	_, ok := m.keys[strings.ToLower(key)]
	return ok
}

// Value masks a decoded JSON value (maps, slices and scalars).
func (m Masker) Value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if m.Has(k) {
				out[k] = maskedValue
				continue
			}
			out[k] = m.Value(inner)
		}
		return out
	case []any:
		return lo.Map(val, func(inner any, _ int) any { return m.Value(inner) })
	default:
		return v
	}
}

// JSON masks a raw JSON object or array. ok is false when raw is not one.
func (m Masker) JSON(raw []byte) (masked string, ok bool) {
	if len(raw) == 0 || (raw[0] != '{' && raw[0] != '[') {
		return "", false
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", false
	}
	out, err := json.Marshal(m.Value(decoded))
	if err != nil {
		return "", false
	}
	return string(out), true
}

func (m Masker) attr(a slog.Attr) slog.Attr {
	if m.Has(a.Key) {
		return slog.String(a.Key, maskedValue)
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		group := lo.Map(a.Value.Group(), func(ga slog.Attr, _ int) slog.Attr { return m.attr(ga) })
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(group...)}
	case slog.KindString:
		if s, ok := m.JSON([]byte(a.Value.String())); ok {
			return slog.String(a.Key, s)
		}
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case map[string]any, []any:
			return slog.Any(a.Key, m.Value(v))
		case map[string]string:
			return slog.Any(a.Key, m.Value(lo.MapValues(v, func(s, _ string) any { return s })))
		case []byte:
			if s, ok := m.JSON(v); ok {
				return slog.String(a.Key, s)
			}
		}
	}
	return a
}

