package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	// Business context keys propagated through request handling.
	queryIDKey  contextKey = "legal.query.id"
	sourceIDKey contextKey = "legal.source.id"
	stageKey    contextKey = "legal.stage"
)

// WithQueryID attaches the per-request query identifier to the context.
func WithQueryID(ctx context.Context, queryID string) context.Context {
	return context.WithValue(ctx, queryIDKey, queryID)
}

// WithSourceID attaches the legal source being processed to the context.
func WithSourceID(ctx context.Context, sourceID string) context.Context {
	return context.WithValue(ctx, sourceIDKey, sourceID)
}

// WithStage attaches the pipeline stage (rewrite, search, generate) to the
// context.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// FromContext returns base enriched with whatever business context values
// are present. Missing values simply produce no fields.
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	var fields []any
	if v := ctx.Value(queryIDKey); v != nil {
		fields = append(fields, string(queryIDKey), v)
	}
	if v := ctx.Value(sourceIDKey); v != nil {
		fields = append(fields, string(sourceIDKey), v)
	}
	if v := ctx.Value(stageKey); v != nil {
		fields = append(fields, string(stageKey), v)
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
