// Package resolver implements the per-request decision procedure for short
// links: fetch the record, classify it, and turn the classification into a
// redirect, a not-found, or a password prompt.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XurifyTeine/url-shortener/internal/accounting"
	"github.com/XurifyTeine/url-shortener/internal/backend"
	"github.com/XurifyTeine/url-shortener/internal/messaging"
	"github.com/XurifyTeine/url-shortener/internal/middleware"
	"github.com/XurifyTeine/url-shortener/internal/shortlink"
	"go.uber.org/zap"
)

// ErrWrongPassword is the one credential failure surfaced verbatim to the
// visitor.
var ErrWrongPassword = errors.New("Wrong password")

// RecordFetcher is the slice of the backend the resolver needs.
type RecordFetcher interface {
	GetURL(ctx context.Context, id string) (*shortlink.Record, error)
}

// Resolver composes record lookup, lifecycle evaluation, and credential
// verification into the per-request outcomes, and fires a visit event for
// every successful redirect decision.
type Resolver struct {
	backend      RecordFetcher
	publishVisit messaging.Publish[accounting.LinkVisitedEvent]
	logger       *zap.Logger
	now          func() time.Time
}

// New creates a resolver.
func New(
	fetcher RecordFetcher,
	publishVisit messaging.Publish[accounting.LinkVisitedEvent],
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		backend:      fetcher,
		publishVisit: publishVisit,
		logger:       logger,
		now:          time.Now,
	}
}

// Resolve decides the outcome for a short identifier. Every backend failure,
// including timeouts and 5xx responses, resolves to NotFound: a lookup that
// cannot be completed never redirects. A Redirect outcome fires exactly one
// visit event; Gated and NotFound outcomes fire none.
func (r *Resolver) Resolve(ctx context.Context, id string) shortlink.Outcome {
	rec, err := r.backend.GetURL(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			r.logger.Debug("short url not found", zap.String("id", id))
		} else {
			r.logger.Error("short url lookup failed",
				zap.String("id", id),
				zap.Error(err),
			)
		}

		return shortlink.NotFound{}
	}

	outcome := shortlink.Evaluate(rec, r.now())

	if redirect, ok := outcome.(shortlink.Redirect); ok {
		r.reportVisit(ctx, rec.ID)

		return redirect
	}

	return outcome
}

// VerifyPassword handles the submitted-credential request of a gated link.
// The record is re-fetched and its expiry rules re-checked before the
// password is compared, so a link that expired between the prompt render and
// the submission is refused exactly like an unknown one. A successful
// verification is a successful resolution and counts as the visit for this
// request.
func (r *Resolver) VerifyPassword(ctx context.Context, id, candidate string) (string, error) {
	rec, err := r.backend.GetURL(ctx, id)
	if err != nil {
		if !errors.Is(err, backend.ErrNotFound) {
			r.logger.Error("short url lookup failed during verification",
				zap.String("id", id),
				zap.Error(err),
			)
		}

		return "", err
	}

	if shortlink.Expired(rec, r.now()) {
		return "", fmt.Errorf("link expired: %w", backend.ErrNotFound)
	}

	if rec.Gated() && !shortlink.VerifyPassword(rec.Password, candidate) {
		return "", ErrWrongPassword
	}

	r.reportVisit(ctx, rec.ID)

	return rec.Destination, nil
}

// reportVisit publishes the visit event for a redirect decision. It is
// detached from the response path: a failed publish is logged and the
// redirect proceeds, so a slow or failing broker cannot break working links.
func (r *Resolver) reportVisit(ctx context.Context, id string) {
	meta := middleware.RequestMetaFromContext(ctx)

	event := &accounting.LinkVisitedEvent{
		ID:         id,
		AccessedAt: r.now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err := r.publishVisit(event); err != nil {
		r.logger.Error("failed to publish visit event",
			zap.String("id", id),
			zap.Error(err),
		)
	}
}
