package river

import (
	"context"
	"errors"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/bluemountain/brewdesk/internal/domain"
)

// Deliverer is the slice of the enquiry service the worker needs: load the
// current enquiry and run one delivery attempt through the lifecycle.
type Deliverer interface {
	GetByID(ctx context.Context, id string) (domain.Enquiry, error)
	Deliver(ctx context.Context, enquiry domain.Enquiry) (domain.Enquiry, error)
}

// RedispatchWorker processes redispatch jobs: it reloads the enquiry and
// re-sends the quote-request mail, recording the outcome through the same
// dispatch lifecycle the synchronous path uses.
type RedispatchWorker struct {
	river.WorkerDefaults[RedispatchArgs]

	svc Deliverer
}

// Work processes a single redispatch job. A send failure is returned so
// River retries the job; the enquiry itself is already marked failed.
func (w *RedispatchWorker) Work(ctx context.Context, job *river.Job[RedispatchArgs]) error {
	slog.InfoContext(ctx, "redispatching enquiry",
		"enquiry_id", job.Args.EnquiryID,
		"business_name", job.Args.BusinessName,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)

	enquiry, err := w.svc.GetByID(ctx, job.Args.EnquiryID)
	if err != nil {
		if errors.Is(err, domain.ErrEnquiryNotFound) {
			// Deleted since enqueueing; nothing to retry.
			slog.WarnContext(ctx, "enquiry gone, dropping redispatch",
				"enquiry_id", job.Args.EnquiryID)
			return nil
		}
		return err
	}

	if _, err := w.svc.Deliver(ctx, enquiry); err != nil {
		slog.ErrorContext(ctx, "redispatch failed",
			"enquiry_id", enquiry.ID,
			"attempt", job.Attempt,
			"error", err,
		)
		return err
	}

	return nil
}
