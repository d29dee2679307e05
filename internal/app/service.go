package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bluemountain/brewdesk/internal/domain"
)

// ErrDeliveryFailed marks an enquiry that was stored but whose mail could
// not be sent. The enquiry stays in "failed" and can be redispatched.
var ErrDeliveryFailed = errors.New("enquiry mail delivery failed")

// EnquiryService orchestrates enquiry intake and delivery.
type EnquiryService struct {
	repo      domain.EnquiryRepository
	sender    domain.MailSender
	queue     domain.Redispatcher
	validator domain.TransitionValidator
}

// NewEnquiryService creates a service with the given adapters.
func NewEnquiryService(repo domain.EnquiryRepository, sender domain.MailSender, queue domain.Redispatcher, validator domain.TransitionValidator) *EnquiryService {
	return &EnquiryService{
		repo:      repo,
		sender:    sender,
		queue:     queue,
		validator: validator,
	}
}

// Submit validates an inquiry, persists it, and delivers it to the sales
// inbox in the same call. Validation failures block before anything is
// stored or sent. A delivery failure leaves the enquiry in "failed" and is
// returned to the caller, which surfaces it as a transport error.
func (s *EnquiryService) Submit(ctx context.Context, in domain.Inquiry) (domain.Enquiry, error) {
	if err := in.Validate(false); err != nil {
		return domain.Enquiry{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.Enquiry{}, fmt.Errorf("generating enquiry id: %w", err)
	}

	enquiry := domain.NewEnquiry(id, in)

	if err := s.repo.Create(ctx, enquiry); err != nil {
		return domain.Enquiry{}, fmt.Errorf("creating enquiry: %w", err)
	}

	return s.Deliver(ctx, enquiry)
}

// Deliver moves an enquiry through the sending state, performs the mail
// send, and records the outcome. It is used both by Submit and by the
// redispatch worker.
func (s *EnquiryService) Deliver(ctx context.Context, enquiry domain.Enquiry) (domain.Enquiry, error) {
	enquiry, err := s.apply(ctx, enquiry, domain.EventDispatch)
	if err != nil {
		return domain.Enquiry{}, err
	}

	if sendErr := s.sender.Send(ctx, enquiry); sendErr != nil {
		enquiry, err = s.apply(ctx, enquiry, domain.EventDispatchFailed)
		if err != nil {
			// The mail failure must stay visible even when recording it fails.
			return domain.Enquiry{}, fmt.Errorf("%w: %w (recording failed state: %w)", ErrDeliveryFailed, sendErr, err)
		}
		return enquiry, fmt.Errorf("%w: %w", ErrDeliveryFailed, sendErr)
	}

	return s.apply(ctx, enquiry, domain.EventDispatchComplete)
}

// Redispatch queues a new delivery attempt for an enquiry. Only enquiries
// the lifecycle allows to dispatch again (received or failed) are accepted.
func (s *EnquiryService) Redispatch(ctx context.Context, id string) (domain.Enquiry, error) {
	enquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Enquiry{}, err
	}

	// Check the event is legal now; the worker applies it when it runs.
	if _, err := s.validator.Apply(ctx, enquiry.Status, domain.EventDispatch); err != nil {
		return domain.Enquiry{}, err
	}

	if err := s.queue.Redispatch(ctx, enquiry); err != nil {
		return domain.Enquiry{}, fmt.Errorf("queueing redispatch: %w", err)
	}

	return enquiry, nil
}

// GetByID returns an enquiry by its unique identifier.
func (s *EnquiryService) GetByID(ctx context.Context, id string) (domain.Enquiry, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns enquiries matching the given filter.
func (s *EnquiryService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Enquiry, error) {
	return s.repo.List(ctx, filter)
}

// Transition applies a dispatch lifecycle event to an enquiry directly,
// without sending mail. Used for operator corrections.
func (s *EnquiryService) Transition(ctx context.Context, id string, event domain.DispatchEvent) (domain.Enquiry, error) {
	enquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Enquiry{}, err
	}
	return s.apply(ctx, enquiry, event)
}

func (s *EnquiryService) apply(ctx context.Context, enquiry domain.Enquiry, event domain.DispatchEvent) (domain.Enquiry, error) {
	newStatus, err := s.validator.Apply(ctx, enquiry.Status, event)
	if err != nil {
		return domain.Enquiry{}, err
	}

	enquiry.Status = newStatus

	if err := s.repo.Update(ctx, enquiry); err != nil {
		return domain.Enquiry{}, fmt.Errorf("updating enquiry: %w", err)
	}

	return enquiry, nil
}
