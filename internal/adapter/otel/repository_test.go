package otel_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	adapter "github.com/bluemountain/brewdesk/internal/adapter/otel"
	"github.com/bluemountain/brewdesk/internal/domain"
)

// --- Test tracer setup ---

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

// --- Mock repository ---

type mockRepo struct {
	enquiries map[string]domain.Enquiry
}

func newMockRepo() *mockRepo {
	return &mockRepo{enquiries: make(map[string]domain.Enquiry)}
}

func (m *mockRepo) Create(_ context.Context, e domain.Enquiry) error {
	m.enquiries[e.ID] = e
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (domain.Enquiry, error) {
	e, ok := m.enquiries[id]
	if !ok {
		return domain.Enquiry{}, domain.ErrEnquiryNotFound
	}
	return e, nil
}

func (m *mockRepo) List(_ context.Context, _ domain.ListFilter) ([]domain.Enquiry, error) {
	out := make([]domain.Enquiry, 0, len(m.enquiries))
	for _, e := range m.enquiries {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, e domain.Enquiry) error {
	if _, ok := m.enquiries[e.ID]; !ok {
		return domain.ErrEnquiryNotFound
	}
	m.enquiries[e.ID] = e
	return nil
}

func testEnquiry(id string) domain.Enquiry {
	return domain.NewEnquiry(id, domain.Inquiry{
		BusinessName:  "Highland Brews",
		ContactPerson: "Lal",
		Email:         "lal@highlandbrews.in",
		Message:       "hi",
	})
}

// --- Tests ---

func TestTracingRepository_CreateSpan(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingRepository(newMockRepo())

	if err := repo.Create(context.Background(), testEnquiry("e-1")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "EnquiryRepository.Create" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "EnquiryRepository.Create")
	}
}

func TestTracingRepository_Delegates(t *testing.T) {
	setupTestTracer(t)
	mock := newMockRepo()
	repo := adapter.NewTracingRepository(mock)
	ctx := context.Background()

	e := testEnquiry("e-2")
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "e-2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != "e-2" {
		t.Errorf("ID = %q, want %q", got.ID, "e-2")
	}

	e.Status = domain.StatusSent
	if err := repo.Update(ctx, e); err != nil {
		t.Fatalf("Update: %v", err)
	}

	all, err := repo.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List returned %d enquiries, want 1", len(all))
	}
}

func TestTracingRepository_RecordsError(t *testing.T) {
	exporter := setupTestTracer(t)
	repo := adapter.NewTracingRepository(newMockRepo())

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrEnquiryNotFound) {
		t.Fatalf("error = %v, want ErrEnquiryNotFound", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want Error", spans[0].Status.Code)
	}
}
