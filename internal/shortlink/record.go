package shortlink

import "time"

// Record is a short URL record as stored by the backend. The resolver reads
// it and triggers page-view increments, but never mutates it directly.
type Record struct {
	ID           string     `json:"id"`
	Destination  string     `json:"destination"`
	DateCreated  time.Time  `json:"date_created"`
	SelfDestruct *time.Time `json:"self_destruct,omitempty"`
	MaxPageHits  int64      `json:"max_page_hits,omitempty"`
	PageHits     int64      `json:"page_hits"`
	Password     string     `json:"password,omitempty"` // bcrypt hash, never rendered to visitors
	SessionToken string     `json:"session_token,omitempty"`
}

// Gated reports whether the record requires password verification before a
// redirect can be issued.
func (r *Record) Gated() bool {
	return r.Password != ""
}
