package domain

import "time"

// DispatchStatus represents the delivery state of an enquiry.
type DispatchStatus string

const (
	StatusReceived DispatchStatus = "received"
	StatusSending  DispatchStatus = "sending"
	StatusSent     DispatchStatus = "sent"
	StatusFailed   DispatchStatus = "failed"
)

// DispatchEvent represents an action that moves an enquiry through delivery.
type DispatchEvent string

const (
	EventDispatch         DispatchEvent = "dispatch"
	EventDispatchComplete DispatchEvent = "dispatch_complete"
	EventDispatchFailed   DispatchEvent = "dispatch_failed"
)

// Transition defines a valid state change: an event moves an enquiry from Src to Dst.
type Transition struct {
	Event DispatchEvent
	Src   DispatchStatus
	Dst   DispatchStatus
}

// Transitions defines all valid delivery state changes. Dispatch is allowed
// from "failed" as well, which is how a failed enquiry gets retried.
// This is domain knowledge consumed by the FSM adapter.
var Transitions = []Transition{
	{Event: EventDispatch, Src: StatusReceived, Dst: StatusSending},
	{Event: EventDispatch, Src: StatusFailed, Dst: StatusSending},
	{Event: EventDispatchComplete, Src: StatusSending, Dst: StatusSent},
	{Event: EventDispatchFailed, Src: StatusSending, Dst: StatusFailed},
}

// Enquiry is the core domain entity: one accepted contact-form submission
// on its way to the sales inbox.
type Enquiry struct {
	ID               string
	BusinessName     string
	ContactPerson    string
	Email            string
	Location         string
	Message          string
	SelectionSummary string
	Status           DispatchStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewEnquiry creates an enquiry in the initial "received" state from an
// already-validated inquiry payload.
func NewEnquiry(id string, in Inquiry) Enquiry {
	now := time.Now().UTC()
	return Enquiry{
		ID:               id,
		BusinessName:     in.BusinessName,
		ContactPerson:    in.ContactPerson,
		Email:            in.Email,
		Location:         in.Location,
		Message:          in.Message,
		SelectionSummary: in.SelectionSummary,
		Status:           StatusReceived,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Inquiry returns the payload view of the enquiry, used when re-rendering
// the outbound message for a redispatch.
func (e Enquiry) Inquiry() Inquiry {
	return Inquiry{
		BusinessName:     e.BusinessName,
		ContactPerson:    e.ContactPerson,
		Email:            e.Email,
		Location:         e.Location,
		Message:          e.Message,
		SelectionSummary: e.SelectionSummary,
	}
}
