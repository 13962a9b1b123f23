package accounting

import (
	"context"

	"go.uber.org/zap"
)

// PageViewReporter reports one successful resolution to the URL store.
type PageViewReporter interface {
	ReportPageView(ctx context.Context, id string) (int64, error)
}

// VisitStore archives visit events for analytics.
type VisitStore interface {
	SaveVisit(ctx context.Context, event *LinkVisitedEvent) error
}

// Reporter consumes link.visited events: it increments the backend's hit
// counter and archives the visit. Both halves are best effort. The event is
// always acked, even on failure, because a redelivered event would increment
// the hit counter a second time for a single redirect.
type Reporter struct {
	backend PageViewReporter
	store   VisitStore
	logger  *zap.Logger
}

// NewReporter creates a visit reporter.
func NewReporter(backend PageViewReporter, store VisitStore, logger *zap.Logger) *Reporter {
	return &Reporter{
		backend: backend,
		store:   store,
		logger:  logger,
	}
}

// Handle processes one visit event. It never returns an error; failures are
// logged so the message is acked exactly once.
func (r *Reporter) Handle(ctx context.Context, event *LinkVisitedEvent) error {
	hits, err := r.backend.ReportPageView(ctx, event.ID)
	if err != nil {
		r.logger.Error("failed to report page view",
			zap.String("id", event.ID),
			zap.Error(err),
		)
	} else {
		r.logger.Debug("page view reported",
			zap.String("id", event.ID),
			zap.Int64("pageHits", hits),
		)
	}

	if err := r.store.SaveVisit(ctx, event); err != nil {
		r.logger.Error("failed to archive visit",
			zap.String("id", event.ID),
			zap.Error(err),
		)
	}

	return nil
}
