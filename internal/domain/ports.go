package domain

import "context"

// EnquiryRepository defines the persistence contract for enquiries.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry Enquiry) error
	GetByID(ctx context.Context, id string) (Enquiry, error)
	List(ctx context.Context, filter ListFilter) ([]Enquiry, error)
	Update(ctx context.Context, enquiry Enquiry) error
}

// ListFilter holds optional criteria for listing enquiries.
type ListFilter struct {
	Status *DispatchStatus
	Limit  int
	Offset int
}

// MailSender defines the contract for delivering an enquiry to the sales
// inbox. Send blocks until the provider accepts or rejects the message.
type MailSender interface {
	Send(ctx context.Context, enquiry Enquiry) error
}

// Redispatcher defines the contract for queueing an enquiry to be re-sent
// asynchronously.
type Redispatcher interface {
	Redispatch(ctx context.Context, enquiry Enquiry) error
}

// TransitionValidator checks and applies dispatch lifecycle events.
type TransitionValidator interface {
	Apply(ctx context.Context, current DispatchStatus, event DispatchEvent) (DispatchStatus, error)
}
