package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bluemountain/brewdesk/internal/app"
	"github.com/bluemountain/brewdesk/internal/domain"
)

// --- Mocks ---

type mockRepo struct {
	enquiries map[string]domain.Enquiry
	updateErr func(domain.Enquiry) error
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

func (m *mockRepo) List(_ context.Context, filter domain.ListFilter) ([]domain.Enquiry, error) {
	out := make([]domain.Enquiry, 0, len(m.enquiries))
	for _, e := range m.enquiries {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, e domain.Enquiry) error {
	if m.updateErr != nil {
		if err := m.updateErr(e); err != nil {
			return err
		}
	}
	if _, ok := m.enquiries[e.ID]; !ok {
		return domain.ErrEnquiryNotFound
	}
	m.enquiries[e.ID] = e
	return nil
}

type mockSender struct {
	sent []domain.Enquiry
	err  error
}

func (m *mockSender) Send(_ context.Context, e domain.Enquiry) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

type mockQueue struct {
	queued []domain.Enquiry
}

func (m *mockQueue) Redispatch(_ context.Context, e domain.Enquiry) error {
	m.queued = append(m.queued, e)
	return nil
}

// tableValidator applies events straight from domain.Transitions, with no
// FSM library involved.
type tableValidator struct{}

func (tableValidator) Apply(_ context.Context, current domain.DispatchStatus, event domain.DispatchEvent) (domain.DispatchStatus, error) {
	for _, tr := range domain.Transitions {
		if tr.Event == event && tr.Src == current {
			return tr.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}

func newService(repo *mockRepo, sender *mockSender, queue *mockQueue) *app.EnquiryService {
	return app.NewEnquiryService(repo, sender, queue, tableValidator{})
}

func validInquiry() domain.Inquiry {
	return domain.Inquiry{
		BusinessName:  "Highland Brews",
		ContactPerson: "Lal",
		Email:         "lal@highlandbrews.in",
		Message:       "Looking for 50kg monthly supply.",
	}
}

// --- Tests ---

func TestSubmit_Success(t *testing.T) {
	repo := newMockRepo()
	sender := &mockSender{}
	svc := newService(repo, sender, &mockQueue{})

	enquiry, err := svc.Submit(context.Background(), validInquiry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if enquiry.Status != domain.StatusSent {
		t.Errorf("Status = %q, want %q", enquiry.Status, domain.StatusSent)
	}
	if len(enquiry.ID) == 0 {
		t.Error("ID should not be empty")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(sender.sent))
	}
	if sender.sent[0].ID != enquiry.ID {
		t.Errorf("sent enquiry ID = %q, want %q", sender.sent[0].ID, enquiry.ID)
	}

	stored, err := repo.GetByID(context.Background(), enquiry.ID)
	if err != nil {
		t.Fatalf("enquiry not found in repo: %v", err)
	}
	if stored.Status != domain.StatusSent {
		t.Errorf("stored Status = %q, want %q", stored.Status, domain.StatusSent)
	}
}

func TestSubmit_ValidationBlocksEverything(t *testing.T) {
	repo := newMockRepo()
	sender := &mockSender{}
	svc := newService(repo, sender, &mockQueue{})

	in := validInquiry()
	in.BusinessName = ""

	_, err := svc.Submit(context.Background(), in)
	var missing *domain.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}

	// No partial send: nothing stored, nothing sent.
	if len(repo.enquiries) != 0 {
		t.Errorf("repo has %d enquiries, want 0", len(repo.enquiries))
	}
	if len(sender.sent) != 0 {
		t.Errorf("sender sent %d mails, want 0", len(sender.sent))
	}
}

func TestSubmit_InvalidEmailBlocks(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, &mockSender{}, &mockQueue{})

	in := validInquiry()
	in.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), in)
	var invalid *domain.InvalidEmailError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidEmailError, got %v", err)
	}
	if invalid.Address != "not-an-email" {
		t.Errorf("Address = %q, want %q", invalid.Address, "not-an-email")
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	repo := newMockRepo()
	sender := &mockSender{err: errors.New("smtp: connection refused")}
	svc := newService(repo, sender, &mockQueue{})

	enquiry, err := svc.Submit(context.Background(), validInquiry())
	if !errors.Is(err, app.ErrDeliveryFailed) {
		t.Fatalf("error = %v, want ErrDeliveryFailed", err)
	}

	// The enquiry survives as "failed" so it can be redispatched.
	if enquiry.Status != domain.StatusFailed {
		t.Errorf("Status = %q, want %q", enquiry.Status, domain.StatusFailed)
	}
	stored, getErr := repo.GetByID(context.Background(), enquiry.ID)
	if getErr != nil {
		t.Fatalf("enquiry not stored: %v", getErr)
	}
	if stored.Status != domain.StatusFailed {
		t.Errorf("stored Status = %q, want %q", stored.Status, domain.StatusFailed)
	}
}

func TestSubmit_SendAndRecordBothFail(t *testing.T) {
	repo := newMockRepo()
	repo.updateErr = func(e domain.Enquiry) error {
		if e.Status == domain.StatusFailed {
			return errors.New("disk full")
		}
		return nil
	}
	sender := &mockSender{err: errors.New("smtp: connection refused")}
	svc := newService(repo, sender, &mockQueue{})

	_, err := svc.Submit(context.Background(), validInquiry())
	if !errors.Is(err, app.ErrDeliveryFailed) {
		t.Fatalf("error = %v, want ErrDeliveryFailed", err)
	}
	// Both the mail failure and the bookkeeping failure stay visible.
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error %q drops the send failure", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error %q drops the recording failure", err)
	}
}

func TestRedispatch_QueuesFailedEnquiry(t *testing.T) {
	repo := newMockRepo()
	queue := &mockQueue{}
	svc := newService(repo, &mockSender{}, queue)

	failed := domain.NewEnquiry("e-1", validInquiry())
	failed.Status = domain.StatusFailed
	repo.enquiries["e-1"] = failed

	enquiry, err := svc.Redispatch(context.Background(), "e-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enquiry.ID != "e-1" {
		t.Errorf("ID = %q, want %q", enquiry.ID, "e-1")
	}
	if len(queue.queued) != 1 {
		t.Fatalf("queued %d jobs, want 1", len(queue.queued))
	}
}

func TestRedispatch_RejectsSentEnquiry(t *testing.T) {
	repo := newMockRepo()
	queue := &mockQueue{}
	svc := newService(repo, &mockSender{}, queue)

	sent := domain.NewEnquiry("e-2", validInquiry())
	sent.Status = domain.StatusSent
	repo.enquiries["e-2"] = sent

	_, err := svc.Redispatch(context.Background(), "e-2")
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if len(queue.queued) != 0 {
		t.Errorf("queued %d jobs, want 0", len(queue.queued))
	}
}

func TestRedispatch_NotFound(t *testing.T) {
	svc := newService(newMockRepo(), &mockSender{}, &mockQueue{})

	_, err := svc.Redispatch(context.Background(), "missing")
	if !errors.Is(err, domain.ErrEnquiryNotFound) {
		t.Errorf("error = %v, want ErrEnquiryNotFound", err)
	}
}

func TestDeliver_RetrySucceeds(t *testing.T) {
	repo := newMockRepo()
	sender := &mockSender{}
	svc := newService(repo, sender, &mockQueue{})

	failed := domain.NewEnquiry("e-3", validInquiry())
	failed.Status = domain.StatusFailed
	repo.enquiries["e-3"] = failed

	enquiry, err := svc.Deliver(context.Background(), failed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enquiry.Status != domain.StatusSent {
		t.Errorf("Status = %q, want %q", enquiry.Status, domain.StatusSent)
	}
}

func TestTransition_Invalid(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo, &mockSender{}, &mockQueue{})

	e := domain.NewEnquiry("e-4", validInquiry())
	repo.enquiries["e-4"] = e

	_, err := svc.Transition(context.Background(), "e-4", domain.EventDispatchComplete)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Current != domain.StatusReceived {
		t.Errorf("Current = %q, want %q", trErr.Current, domain.StatusReceived)
	}
}
