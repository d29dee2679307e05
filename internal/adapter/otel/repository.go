package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bluemountain/brewdesk/internal/domain"
)

const tracerName = "github.com/bluemountain/brewdesk/internal/adapter/otel"

// TracingRepository wraps a domain.EnquiryRepository with OpenTelemetry
// tracing. Each method creates a span with semantic attributes and records
// errors.
type TracingRepository struct {
	next   domain.EnquiryRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRepository implements domain.EnquiryRepository.
var _ domain.EnquiryRepository = (*TracingRepository)(nil)

// NewTracingRepository creates a tracing decorator around the given repository.
func NewTracingRepository(next domain.EnquiryRepository) *TracingRepository {
	return &TracingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingRepository) Create(ctx context.Context, enquiry domain.Enquiry) error {
	ctx, span := r.tracer.Start(ctx, "EnquiryRepository.Create",
		trace.WithAttributes(
			attribute.String("enquiry.id", enquiry.ID),
			attribute.String("enquiry.status", string(enquiry.Status)),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, enquiry)
	recordError(span, err)
	return err
}

func (r *TracingRepository) GetByID(ctx context.Context, id string) (domain.Enquiry, error) {
	ctx, span := r.tracer.Start(ctx, "EnquiryRepository.GetByID",
		trace.WithAttributes(attribute.String("enquiry.id", id)),
	)
	defer span.End()

	enquiry, err := r.next.GetByID(ctx, id)
	recordError(span, err)
	return enquiry, err
}

func (r *TracingRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Enquiry, error) {
	attrs := []attribute.KeyValue{
		attribute.Int("filter.limit", filter.Limit),
		attribute.Int("filter.offset", filter.Offset),
	}
	if filter.Status != nil {
		attrs = append(attrs, attribute.String("filter.status", string(*filter.Status)))
	}

	ctx, span := r.tracer.Start(ctx, "EnquiryRepository.List", trace.WithAttributes(attrs...))
	defer span.End()

	enquiries, err := r.next.List(ctx, filter)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(enquiries)))
	}
	return enquiries, err
}

func (r *TracingRepository) Update(ctx context.Context, enquiry domain.Enquiry) error {
	ctx, span := r.tracer.Start(ctx, "EnquiryRepository.Update",
		trace.WithAttributes(
			attribute.String("enquiry.id", enquiry.ID),
			attribute.String("enquiry.status", string(enquiry.Status)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, enquiry)
	recordError(span, err)
	return err
}

func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
