package accounting

import (
	"context"

	"go.uber.org/zap"
)

// NoopVisitStore is a VisitStore that only logs, used when no Postgres
// archive is configured.
type NoopVisitStore struct {
	logger *zap.Logger
}

// NewNoopVisitStore creates a logging no-op visit store.
func NewNoopVisitStore(logger *zap.Logger) *NoopVisitStore {
	return &NoopVisitStore{logger: logger}
}

func (n *NoopVisitStore) SaveVisit(_ context.Context, event *LinkVisitedEvent) error {
	n.logger.Info("link visited",
		zap.String("id", event.ID),
		zap.Time("accessedAt", event.AccessedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}
