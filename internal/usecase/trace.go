package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var usecaseTracer = otel.Tracer("github.com/riskibarqy/stathub/internal/usecase")

// startUsecaseSpan opens a child span only under an existing request span.
// Scheduler runs have no parent and stay untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func playerAttr(playerID int64) attribute.KeyValue {
	return attribute.Int64("stathub.player_id", playerID)
}

func matchAttr(matchID int64) attribute.KeyValue {
	return attribute.Int64("stathub.match_id", matchID)
}
