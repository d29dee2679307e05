package smtp

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/bluemountain/brewdesk/internal/domain"
)

// Compile-time check: Sender implements domain.MailSender.
var _ domain.MailSender = (*Sender)(nil)

// Config holds the outbound-mail account settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Sender delivers enquiries as branded quote-request emails over SMTP.
type Sender struct {
	cfg Config
}

// New creates a sender for the given account.
func New(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// Send renders the enquiry into the quote-request email and delivers it.
// The reply-to header carries the submitter's address, so sales can answer
// the enquiry directly.
func (s *Sender) Send(ctx context.Context, e domain.Enquiry) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(s.cfg.To); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}
	if err := msg.ReplyTo(e.Email); err != nil {
		return fmt.Errorf("setting reply-to address: %w", err)
	}

	msg.Subject("☕ Coffee Enquiry from " + e.BusinessName)

	body, err := renderBody(e.Inquiry())
	if err != nil {
		return fmt.Errorf("rendering mail body: %w", err)
	}
	msg.SetBodyString(mail.TypeTextHTML, body)

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}

	return nil
}

// bodyTemplate is the branded quote-request layout. Field values pass
// through html/template's contextual escaping, so submitted text cannot
// inject markup into the mail.
var bodyTemplate = template.Must(template.New("quote").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f6f2; border-radius: 10px;">
  <div style="background-color: #0d0d0d; color: #f9f6f2; padding: 20px; border-radius: 10px 10px 0 0; text-align: center;">
    <h1 style="color: #d4af37; margin: 0;">☕ Blue Mountain Coffee</h1>
    <h2 style="color: #f9f6f2; margin: 10px 0 0 0;">New Quote Request</h2>
  </div>

  <div style="background-color: white; padding: 30px; border-radius: 0 0 10px 10px;">
    <h3 style="color: #3e2c25; border-bottom: 2px solid #d4af37; padding-bottom: 10px;">Business Information</h3>

    <table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
      <tr style="background-color: #f9f6f2;">
        <td style="padding: 12px; font-weight: bold; color: #3e2c25; border: 1px solid #ddd;">Business Name:</td>
        <td style="padding: 12px; border: 1px solid #ddd;">{{.BusinessName}}</td>
      </tr>
      <tr>
        <td style="padding: 12px; font-weight: bold; color: #3e2c25; border: 1px solid #ddd;">Contact Person:</td>
        <td style="padding: 12px; border: 1px solid #ddd;">{{.ContactPerson}}</td>
      </tr>
      <tr style="background-color: #f9f6f2;">
        <td style="padding: 12px; font-weight: bold; color: #3e2c25; border: 1px solid #ddd;">Email:</td>
        <td style="padding: 12px; border: 1px solid #ddd;">{{.Email}}</td>
      </tr>
      {{if .Location}}<tr>
        <td style="padding: 12px; font-weight: bold; color: #3e2c25; border: 1px solid #ddd;">Location:</td>
        <td style="padding: 12px; border: 1px solid #ddd;">{{.Location}}</td>
      </tr>
      {{end}}{{if .SelectionSummary}}<tr style="background-color: #f9f6f2;">
        <td style="padding: 12px; font-weight: bold; color: #3e2c25; border: 1px solid #ddd;">Coffee Selection:</td>
        <td style="padding: 12px; border: 1px solid #ddd;">{{.SelectionSummary}}</td>
      </tr>
      {{end}}</table>

    <h3 style="color: #3e2c25; border-bottom: 2px solid #d4af37; padding-bottom: 10px;">Additional Message</h3>
    <div style="background-color: #f9f6f2; padding: 15px; border-radius: 5px; margin: 15px 0; border-left: 4px solid #d4af37;">
      <p style="margin: 0; line-height: 1.6;">{{.Message}}</p>
    </div>

    <div style="margin-top: 30px; padding: 20px; background-color: #3e2c25; color: #f9f6f2; border-radius: 5px; text-align: center;">
      <p style="margin: 0; font-style: italic;">Fresh from Kolasib, Mizoram • Direct from Northeast India</p>
    </div>
  </div>
</div>`))

func renderBody(in domain.Inquiry) (string, error) {
	var b strings.Builder
	if err := bodyTemplate.Execute(&b, in); err != nil {
		return "", err
	}
	return b.String(), nil
}
