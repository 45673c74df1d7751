package services

import "context"

type contextKey string

const (
	wordKey  contextKey = "word"
	runIDKey contextKey = "run_id"
)

// WithWord annotates context with the vocabulary word being enriched.
func WithWord(ctx context.Context, word string) context.Context {
	if word == "" {
		return ctx
	}
	return context.WithValue(ctx, wordKey, word)
}

// WordFromContext extracts the current word if present.
func WordFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(wordKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRunID annotates context with the pipeline run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(runIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
