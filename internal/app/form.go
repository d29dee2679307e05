package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/bluemountain/brewdesk/internal/domain"
)

// ResetDelay is how long a successful submission stays visible before the
// form clears back to its prefilled state.
const ResetDelay = 3 * time.Second

// RedirectingText is shown after a successful WhatsApp hand-off.
const RedirectingText = "Redirecting to WhatsApp... Please send the message to complete your enquiry."

// ContactForm is one contact-page session in the WhatsApp flow: editable
// inquiry fields, a display status, and a delayed auto-reset after success.
// The reset is a cancelable one-shot timer owned by the form; any edit,
// resubmission, or close cancels a pending reset so it can never clobber
// newer state.
type ContactForm struct {
	phone string
	delay time.Duration

	mu      sync.Mutex
	initial domain.Inquiry
	fields  domain.Inquiry
	status  domain.Status
	reset   *time.Timer
	// resetGen invalidates in-flight resets. Timer.Stop cannot stop a
	// callback that has already fired and is waiting on mu, so the callback
	// carries the generation it was scheduled under and bails if a cancel
	// has bumped it since.
	resetGen uint64
	closed   bool
}

// NewContactForm creates a form session. A complete selection prefills the
// coffee-selection summary, and the prefill survives resets; an incomplete
// selection leaves the summary empty.
func NewContactForm(phone string, prefill domain.Selection, delay time.Duration) *ContactForm {
	var initial domain.Inquiry
	if summary, err := prefill.Summary(); err == nil {
		initial.SelectionSummary = summary
	}

	return &ContactForm{
		phone:   phone,
		delay:   delay,
		initial: initial,
		fields:  initial,
	}
}

// SetField updates one field by its form name. Editing cancels any pending
// auto-reset and clears the displayed status.
func (f *ContactForm) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelResetLocked()

	switch name {
	case "businessName":
		f.fields.BusinessName = value
	case "contactPerson":
		f.fields.ContactPerson = value
	case "email":
		f.fields.Email = value
	case "location":
		f.fields.Location = value
	case "message":
		f.fields.Message = value
	case "selectionSummary":
		f.fields.SelectionSummary = value
	default:
		return fmt.Errorf("unknown form field %q", name)
	}

	f.status = domain.Status{}
	return nil
}

// Fields returns a snapshot of the current field values.
func (f *ContactForm) Fields() domain.Inquiry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Status returns the current display status. The zero Status means idle.
func (f *ContactForm) Status() domain.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submit validates the fields (location required in this flow) and, on
// success, returns the wa.me deep link and schedules the auto-reset. On a
// validation failure the fields are left untouched for the user to correct,
// and the status carries the fixed validation text. The hand-off itself has
// no transport-failure mode: opening the link is assumed to succeed.
func (f *ContactForm) Submit() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelResetLocked()

	if err := f.fields.Validate(true); err != nil {
		f.status = domain.StatusFor(err)
		return "", err
	}

	link := domain.WhatsAppLink(f.phone, f.fields.WhatsAppText())
	f.status = domain.Status{Kind: domain.StatusSuccess, Text: RedirectingText}

	gen := f.resetGen
	f.reset = time.AfterFunc(f.delay, func() { f.doReset(gen) })
	return link, nil
}

// Close ends the session and cancels any pending reset.
func (f *ContactForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelResetLocked()
	f.closed = true
}

func (f *ContactForm) doReset(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || gen != f.resetGen {
		return
	}
	f.fields = f.initial
	f.status = domain.Status{}
	f.reset = nil
}

func (f *ContactForm) cancelResetLocked() {
	f.resetGen++
	if f.reset != nil {
		f.reset.Stop()
		f.reset = nil
	}
}

// FormService holds contact-form sessions, keyed like configurator sessions.
type FormService struct {
	phone string
	delay time.Duration

	mu    sync.Mutex
	forms map[string]*ContactForm
}

// NewFormService creates a form session store. delay is normally ResetDelay;
// tests shorten it.
func NewFormService(phone string, delay time.Duration) *FormService {
	return &FormService{
		phone: phone,
		delay: delay,
		forms: make(map[string]*ContactForm),
	}
}

// Open creates a form session, optionally prefilled from a shop selection.
func (s *FormService) Open(prefill domain.Selection) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("generating form id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[id] = NewContactForm(s.phone, prefill, s.delay)
	return id, nil
}

// Get returns the form for a session id.
func (s *FormService) Get(id string) (*ContactForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, ok := s.forms[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return form, nil
}

// Close ends a form session.
func (s *FormService) Close(id string) {
	s.mu.Lock()
	form, ok := s.forms[id]
	delete(s.forms, id)
	s.mu.Unlock()

	if ok {
		form.Close()
	}
}
