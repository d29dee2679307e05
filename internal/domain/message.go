package domain

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Inquiry is the canonical contact-form payload. Both submission flows use
// the same shape; they differ only in whether Location is required, which is
// an explicit validation switch rather than two divergent types.
type Inquiry struct {
	BusinessName     string
	ContactPerson    string
	Email            string
	Location         string
	Message          string
	SelectionSummary string
}

// emailPattern matches a minimal local@domain.tld shape: no whitespace or
// extra @, and at least one dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks required fields before any outbound action. A blank or
// whitespace-only field is missing. All missing fields are reported together
// in one MissingFieldError; the email shape is only checked once every
// required field is present. Location is required only by the WhatsApp
// deep-link flow. No trimming or normalization is applied to the values.
func (i Inquiry) Validate(requireLocation bool) error {
	required := []struct {
		name  string
		value string
	}{
		{"businessName", i.BusinessName},
		{"contactPerson", i.ContactPerson},
		{"email", i.Email},
		{"message", i.Message},
	}
	if requireLocation {
		required = append(required, struct {
			name  string
			value string
		}{"location", i.Location})
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}

	if !emailPattern.MatchString(i.Email) {
		return &InvalidEmailError{Address: i.Email}
	}

	return nil
}

// WhatsAppText renders the contact-form enquiry message. The selection line
// is present only when a selection summary exists; an empty summary omits
// the line entirely rather than rendering it blank.
func (i Inquiry) WhatsAppText() string {
	var b strings.Builder
	b.WriteString("🌟 *New Coffee Enquiry - Blue Mountain Coffee* 🌟\n\n")
	fmt.Fprintf(&b, "👤 *Contact Person:* %s\n", i.ContactPerson)
	fmt.Fprintf(&b, "🏢 *Business Name:* %s\n", i.BusinessName)
	fmt.Fprintf(&b, "📧 *Email:* %s\n", i.Email)
	fmt.Fprintf(&b, "📍 *Location:* %s\n", i.Location)
	if i.SelectionSummary != "" {
		fmt.Fprintf(&b, "☕ *Coffee Selection:* %s\n", i.SelectionSummary)
	}
	fmt.Fprintf(&b, "\n💬 *Message:*\n%s\n\n---\n*Sent via Blue Mountain Coffee Website*", i.Message)
	return b.String()
}

// WhatsAppLink builds the wa.me deep link carrying the given message text.
// phone is E.164 without the plus sign. The encoding is a pure function of
// its inputs: the same text always yields the same URL.
func WhatsAppLink(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(text)
}

// ShopEnquiryLink builds the shop configurator's hand-off URL against the
// api.whatsapp.com/send endpoint. Returns ErrSelectionIncomplete while the
// selection is missing any slot.
func ShopEnquiryLink(phone string, sel Selection) (string, error) {
	text, err := sel.EnquiryText()
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("phone", phone)
	q.Set("text", text)
	return "https://api.whatsapp.com/send?" + q.Encode(), nil
}

// StatusKind classifies a submission outcome for display.
type StatusKind string

const (
	StatusSuccess    StatusKind = "success"
	StatusValidation StatusKind = "validation"
	StatusTransport  StatusKind = "transport"
)

// Fixed user-visible outcome strings. Every failure path maps to one of
// these; nothing is silently swallowed.
const (
	SuccessText       = "Thank you! Your enquiry has been sent successfully. We'll get back to you within 24 hours with detailed information and pricing."
	MissingFieldsText = "Please fill in all required fields"
	InvalidEmailText  = "Please enter a valid email address"
	TransportText     = "Sorry, there was an issue sending your enquiry. Please try again or contact us directly at +91 70854 85883."
)

// Status is a display-ready submission outcome.
type Status struct {
	Kind StatusKind
	Text string
}

// StatusFor maps a submission error to its fixed user-visible status.
// A nil error is success; validation errors carry their specific text;
// anything else is a transport failure with the fallback contact line.
func StatusFor(err error) Status {
	if err == nil {
		return Status{Kind: StatusSuccess, Text: SuccessText}
	}

	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return Status{Kind: StatusValidation, Text: MissingFieldsText}
	}

	var invalid *InvalidEmailError
	if errors.As(err, &invalid) {
		return Status{Kind: StatusValidation, Text: InvalidEmailText}
	}

	return Status{Kind: StatusTransport, Text: TransportText}
}
