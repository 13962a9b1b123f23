// Package backend is the client side of the external URL store. The store
// owns all durable state: records, page-hit counts, password hashes, and
// session associations. Everything here is a remote call with its own
// failure modes; callers are expected to fail closed on error.
package backend

import (
	"context"
	"errors"

	"github.com/XurifyTeine/url-shortener/internal/shortlink"
)

var (
	// ErrNotFound means the backend has no record for the identifier.
	ErrNotFound = errors.New("short url not found")

	// ErrUnavailable covers transport failures and 5xx responses from the
	// backend. Visitors see it as not-found; it is logged with full context.
	ErrUnavailable = errors.New("url store unavailable")
)

// CreateParams are the creation options forwarded to the backend.
type CreateParams struct {
	Destination  string
	SelfDestruct string // RFC 3339, empty for no time limit
	MaxPageHits  int64  // 0 for unlimited
	Password     string // plaintext; the backend stores only a hash
	SessionToken string // associates the link with its creator, may be empty
}

// Service is the full surface of the URL store consumed by this gateway.
type Service interface {
	// GetURL fetches the record for an identifier. Returns ErrNotFound when
	// the backend reports no such id, ErrUnavailable on transport or 5xx
	// failures.
	GetURL(ctx context.Context, id string) (*shortlink.Record, error)

	// ReportPageView records one successful resolution and returns the
	// updated hit count. Best effort: callers log failures and move on.
	ReportPageView(ctx context.Context, id string) (int64, error)

	// MintSession requests a fresh session cookie from the backend.
	MintSession(ctx context.Context) (key, value string, err error)

	// CreateShortURL creates a new record.
	CreateShortURL(ctx context.Context, params CreateParams) (*shortlink.Record, error)

	// DeleteURL removes a record; the session token must match the record's
	// owner for the backend to accept the deletion.
	DeleteURL(ctx context.Context, id, sessionToken string) error

	// ListURLs returns the records created under a session token.
	ListURLs(ctx context.Context, sessionToken string) ([]*shortlink.Record, error)

	// Healthz probes backend liveness.
	Healthz(ctx context.Context) error
}
