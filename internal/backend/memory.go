package backend

import (
	"context"
	"sync"
	"time"

	"github.com/XurifyTeine/url-shortener/internal/shortlink"
	"github.com/jaevor/go-nanoid"
)

// Memory is an in-process stand-in for the URL store, used in tests and when
// the gateway runs without a configured backend. It implements the same
// Service surface, including hashed passwords and session-scoped listing.
type Memory struct {
	mu          sync.RWMutex
	records     map[string]*shortlink.Record
	generateID  func() string
	generateTok func() string
	now         func() time.Time
}

// NewMemory creates an in-memory backend generating ids of the given length.
func NewMemory(idLength int) (*Memory, error) {
	generateID, err := nanoid.Standard(idLength)
	if err != nil {
		return nil, err
	}

	generateTok, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}

	return &Memory{
		records:     make(map[string]*shortlink.Record),
		generateID:  generateID,
		generateTok: generateTok,
		now:         time.Now,
	}, nil
}

func (m *Memory) GetURL(_ context.Context, id string) (*shortlink.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	clone := *rec

	return &clone, nil
}

func (m *Memory) ReportPageView(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return 0, ErrNotFound
	}

	rec.PageHits++

	return rec.PageHits, nil
}

func (m *Memory) MintSession(_ context.Context) (string, string, error) {
	return "session_token", m.generateTok(), nil
}

func (m *Memory) CreateShortURL(_ context.Context, params CreateParams) (*shortlink.Record, error) {
	rec := &shortlink.Record{
		ID:           m.generateID(),
		Destination:  params.Destination,
		DateCreated:  m.now(),
		MaxPageHits:  params.MaxPageHits,
		SessionToken: params.SessionToken,
	}

	if params.SelfDestruct != "" {
		at, err := time.Parse(time.RFC3339, params.SelfDestruct)
		if err != nil {
			return nil, err
		}

		rec.SelfDestruct = &at
	}

	if params.Password != "" {
		hash, err := shortlink.HashPassword(params.Password)
		if err != nil {
			return nil, err
		}

		rec.Password = hash
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[rec.ID] = rec
	clone := *rec

	return &clone, nil
}

func (m *Memory) DeleteURL(_ context.Context, id, sessionToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}

	// Deletion is session-scoped: only the creator may delete.
	if rec.SessionToken != "" && rec.SessionToken != sessionToken {
		return ErrNotFound
	}

	delete(m.records, id)

	return nil
}

func (m *Memory) ListURLs(_ context.Context, sessionToken string) ([]*shortlink.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []*shortlink.Record

	for _, rec := range m.records {
		if rec.SessionToken == sessionToken {
			clone := *rec
			records = append(records, &clone)
		}
	}

	return records, nil
}

func (m *Memory) Healthz(_ context.Context) error {
	return nil
}

// Put inserts a record directly, bypassing creation defaults. Test helper.
func (m *Memory) Put(rec *shortlink.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *rec
	m.records[rec.ID] = &clone
}

var _ Service = (*Memory)(nil)
