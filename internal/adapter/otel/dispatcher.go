package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bluemountain/brewdesk/internal/domain"
)

// TracingDispatcher wraps a domain.Redispatcher with OpenTelemetry tracing.
type TracingDispatcher struct {
	next   domain.Redispatcher
	tracer trace.Tracer
}

// Compile-time check: TracingDispatcher implements domain.Redispatcher.
var _ domain.Redispatcher = (*TracingDispatcher)(nil)

// NewTracingDispatcher creates a tracing decorator around the given dispatcher.
func NewTracingDispatcher(next domain.Redispatcher) *TracingDispatcher {
	return &TracingDispatcher{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (d *TracingDispatcher) Redispatch(ctx context.Context, enquiry domain.Enquiry) error {
	ctx, span := d.tracer.Start(ctx, "Redispatcher.Redispatch",
		trace.WithAttributes(
			attribute.String("enquiry.id", enquiry.ID),
			attribute.String("enquiry.status", string(enquiry.Status)),
		),
	)
	defer span.End()

	err := d.next.Redispatch(ctx, enquiry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
