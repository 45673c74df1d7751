package logging

import (
	"context"
	"log/slog"

	"kotoba/internal/services"
)

// contextHandler surfaces the word and run identifiers carried in a request
// context as log attributes, so call sites only annotate the context once.
type contextHandler struct {
	inner slog.Handler
}

func newContextHandler(inner slog.Handler) slog.Handler {
	return &contextHandler{inner: inner}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	present := make(map[string]bool, record.NumAttrs())
	record.Attrs(func(attr slog.Attr) bool {
		present[attr.Key] = true
		return true
	})

	if word, ok := services.WordFromContext(ctx); ok && !present[FieldWord] {
		record.AddAttrs(slog.String(FieldWord, word))
	}
	if runID, ok := services.RunIDFromContext(ctx); ok && !present[FieldRunID] {
		record.AddAttrs(slog.String(FieldRunID, runID))
	}
	return h.inner.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name)}
}
