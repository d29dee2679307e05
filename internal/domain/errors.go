package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrEnquiryNotFound     = errors.New("enquiry not found")
	ErrSelectionIncomplete = errors.New("selection is not complete")
)

// MissingFieldError is returned when one or more required inquiry fields are
// blank or whitespace-only. Fields holds every missing field name, in the
// fixed validation order.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// InvalidEmailError is returned when the email address does not match the
// local@domain.tld shape.
type InvalidEmailError struct {
	Address string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address %q", e.Address)
}

// TransitionError is returned when a dispatch event is not allowed from the
// enquiry's current status.
type TransitionError struct {
	Event   DispatchEvent
	Current DispatchStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}
