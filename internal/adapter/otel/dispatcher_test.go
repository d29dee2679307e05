package otel_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"

	adapter "github.com/bluemountain/brewdesk/internal/adapter/otel"
	"github.com/bluemountain/brewdesk/internal/domain"
)

type mockDispatcher struct {
	queued []domain.Enquiry
	err    error
}

func (m *mockDispatcher) Redispatch(_ context.Context, e domain.Enquiry) error {
	if m.err != nil {
		return m.err
	}
	m.queued = append(m.queued, e)
	return nil
}

func TestTracingDispatcher_Delegates(t *testing.T) {
	exporter := setupTestTracer(t)
	mock := &mockDispatcher{}
	d := adapter.NewTracingDispatcher(mock)

	if err := d.Redispatch(context.Background(), testEnquiry("e-1")); err != nil {
		t.Fatalf("Redispatch: %v", err)
	}

	if len(mock.queued) != 1 {
		t.Fatalf("queued %d, want 1", len(mock.queued))
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "Redispatcher.Redispatch" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "Redispatcher.Redispatch")
	}
}

func TestTracingDispatcher_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	mock := &mockDispatcher{err: errors.New("queue unavailable")}
	d := adapter.NewTracingDispatcher(mock)

	if err := d.Redispatch(context.Background(), testEnquiry("e-2")); err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want Error", spans[0].Status.Code)
	}
}
