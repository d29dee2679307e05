package river

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/bluemountain/brewdesk/internal/domain"
)

// Compile-time check: Dispatcher implements domain.Redispatcher.
var _ domain.Redispatcher = (*Dispatcher)(nil)

// RedispatchArgs carries the data needed to re-deliver an enquiry
// asynchronously. River serializes this as JSON into its job queue table.
// Only the id is authoritative; the worker reloads the enquiry so it always
// acts on the current status. BusinessName rides along for log readability.
type RedispatchArgs struct {
	EnquiryID    string `json:"enquiry_id"`
	BusinessName string `json:"business_name"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (RedispatchArgs) Kind() string { return "enquiry.redispatch" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Dispatcher implements domain.Redispatcher by enqueuing River jobs. It is
// constructed unbound so the enquiry service can be built before the River
// client (whose worker needs the service); Bind closes the loop.
type Dispatcher struct {
	client *Client
}

// NewDispatcher creates an unbound dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Bind attaches the started River client.
func (d *Dispatcher) Bind(client *Client) {
	d.client = client
}

// Redispatch enqueues a delivery retry for the enquiry.
func (d *Dispatcher) Redispatch(ctx context.Context, enquiry domain.Enquiry) error {
	if d.client == nil {
		return errors.New("redispatch queue not started")
	}

	_, err := d.client.Insert(ctx, RedispatchArgs{
		EnquiryID:    enquiry.ID,
		BusinessName: enquiry.BusinessName,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing redispatch job: %w", err)
	}
	return nil
}
