package store

import (
	"context"

	"github.com/XurifyTeine/url-shortener/internal/accounting"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresVisitStore archives visit events to Postgres for analytics.
//
// Expected schema:
//
//	CREATE TABLE link_visits (
//	    id           BIGSERIAL PRIMARY KEY,
//	    short_url_id TEXT        NOT NULL,
//	    accessed_at  TIMESTAMPTZ NOT NULL,
//	    client_ip    TEXT,
//	    user_agent   TEXT,
//	    referrer     TEXT
//	);
type PostgresVisitStore struct {
	pool *pgxpool.Pool
}

// NewPostgresVisitStore creates a Postgres-backed visit archive.
func NewPostgresVisitStore(pool *pgxpool.Pool) *PostgresVisitStore {
	return &PostgresVisitStore{pool: pool}
}

func (p *PostgresVisitStore) SaveVisit(ctx context.Context, event *accounting.LinkVisitedEvent) error {
	query := `
		INSERT INTO link_visits (short_url_id, accessed_at, client_ip, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		event.ID,
		event.AccessedAt,
		nullableString(event.ClientIP),
		nullableString(event.UserAgent),
		nullableString(event.Referrer),
	)

	return err
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

var _ accounting.VisitStore = (*PostgresVisitStore)(nil)
