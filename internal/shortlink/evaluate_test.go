package shortlink_test

import (
	"testing"
	"time"

	"github.com/XurifyTeine/url-shortener/internal/shortlink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestEvaluate(t *testing.T) {
	t.Run("missing record is not found", func(t *testing.T) {
		assert.Equal(t, shortlink.NotFound{}, shortlink.Evaluate(nil, now))
	})

	t.Run("active record redirects", func(t *testing.T) {
		rec := &shortlink.Record{
			ID:          "abc",
			Destination: "https://example.com",
		}

		assert.Equal(t, shortlink.Redirect{Destination: "https://example.com"}, shortlink.Evaluate(rec, now))
	})

	t.Run("past self destruct blocks regardless of hit counts", func(t *testing.T) {
		rec := &shortlink.Record{
			ID:           "abc",
			Destination:  "https://example.com",
			SelfDestruct: timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
			MaxPageHits:  100,
			PageHits:     0,
		}

		assert.Equal(t, shortlink.NotFound{}, shortlink.Evaluate(rec, now))
	})

	t.Run("self destruct exactly now blocks", func(t *testing.T) {
		rec := &shortlink.Record{
			ID:           "abc",
			Destination:  "https://example.com",
			SelfDestruct: timePtr(now),
		}

		assert.Equal(t, shortlink.NotFound{}, shortlink.Evaluate(rec, now))
	})

	t.Run("exhausted hit limit blocks regardless of future self destruct", func(t *testing.T) {
		rec := &shortlink.Record{
			ID:           "abc",
			Destination:  "https://example.com",
			SelfDestruct: timePtr(now.Add(24 * time.Hour)),
			MaxPageHits:  5,
			PageHits:     5,
		}

		assert.Equal(t, shortlink.NotFound{}, shortlink.Evaluate(rec, now))
	})

	t.Run("hits past the limit still block", func(t *testing.T) {
		rec := &shortlink.Record{
			ID:          "abc",
			Destination: "https://example.com",
			MaxPageHits: 5,
			PageHits:    7,
		}

		assert.Equal(t, shortlink.NotFound{}, shortlink.Evaluate(rec, now))
	})

	t.Run("zero max page hits means unlimited", func(t *testing.T) {
		rec := &shortlink.Record{
			ID:          "abc",
			Destination: "https://example.com",
			MaxPageHits: 0,
			PageHits:    1000000,
		}

		assert.Equal(t, shortlink.Redirect{Destination: "https://example.com"}, shortlink.Evaluate(rec, now))
	})

	t.Run("password gates an active record", func(t *testing.T) {
		rec := &shortlink.Record{
			ID:          "abc",
			Destination: "https://example.com",
			Password:    "$2a$10$fakehash",
		}

		assert.Equal(t, shortlink.PasswordRequired{ID: "abc"}, shortlink.Evaluate(rec, now))
	})

	t.Run("expiry wins over password gating", func(t *testing.T) {
		// An expired link must never prompt for a password.
		rec := &shortlink.Record{
			ID:           "abc",
			Destination:  "https://example.com",
			Password:     "$2a$10$fakehash",
			SelfDestruct: timePtr(now.Add(-time.Minute)),
		}

		assert.Equal(t, shortlink.NotFound{}, shortlink.Evaluate(rec, now))
	})

	t.Run("hit exhaustion wins over password gating", func(t *testing.T) {
		rec := &shortlink.Record{
			ID:          "abc",
			Destination: "https://example.com",
			Password:    "$2a$10$fakehash",
			MaxPageHits: 3,
			PageHits:    3,
		}

		assert.Equal(t, shortlink.NotFound{}, shortlink.Evaluate(rec, now))
	})

	t.Run("evaluation is deterministic for fixed inputs", func(t *testing.T) {
		rec := &shortlink.Record{
			ID:          "abc",
			Destination: "https://example.com",
			MaxPageHits: 5,
			PageHits:    2,
		}

		first := shortlink.Evaluate(rec, now)
		second := shortlink.Evaluate(rec, now)

		assert.Equal(t, first, second)
	})
}

func TestExpired(t *testing.T) {
	tests := []struct {
		name    string
		rec     *shortlink.Record
		expired bool
	}{
		{
			name:    "no limits",
			rec:     &shortlink.Record{ID: "abc"},
			expired: false,
		},
		{
			name:    "future self destruct",
			rec:     &shortlink.Record{ID: "abc", SelfDestruct: timePtr(now.Add(time.Hour))},
			expired: false,
		},
		{
			name:    "past self destruct",
			rec:     &shortlink.Record{ID: "abc", SelfDestruct: timePtr(now.Add(-time.Hour))},
			expired: true,
		},
		{
			name:    "hits below limit",
			rec:     &shortlink.Record{ID: "abc", MaxPageHits: 10, PageHits: 9},
			expired: false,
		},
		{
			name:    "hits at limit",
			rec:     &shortlink.Record{ID: "abc", MaxPageHits: 10, PageHits: 10},
			expired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.rec)
			assert.Equal(t, tt.expired, shortlink.Expired(tt.rec, now))
		})
	}
}
