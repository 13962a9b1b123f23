package handlers

import (
	"time"

	"github.com/XurifyTeine/url-shortener/internal/shortlink"
)

// LinkView is the outward-facing shape of a short URL record. It never
// carries the stored password hash.
type LinkView struct {
	ID               string     `doc:"The short identifier"                  json:"id"`
	URL              string     `doc:"The full short URL"                    json:"url"`
	Destination      string     `doc:"The destination URL"                   json:"destination,omitempty"`
	DateCreated      time.Time  `doc:"Creation timestamp"                    json:"date_created"`
	SelfDestruct     *time.Time `doc:"Expiry timestamp, absent if unlimited" json:"self_destruct,omitempty"`
	MaxPageHits      int64      `doc:"Hit ceiling, 0 means unlimited"        json:"max_page_hits,omitempty"`
	PageHits         int64      `doc:"Successful resolutions so far"         json:"page_hits"`
	PasswordRequired bool       `doc:"Whether the link is password gated"    json:"passwordRequired,omitempty"`
}

// URLError mirrors the backend's error envelope shape.
type URLError struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}

// RedirectRequest is the request for resolving a short link.
type RedirectRequest struct {
	ID string `doc:"The short identifier" example:"LjjdON" path:"id"`
}

// RedirectResponse is either a redirect (Location set) or the password
// prompt payload for a gated link.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"Redirect destination" header:"Location"`
	}
	Body struct {
		ID               string `json:"id,omitempty"`
		PasswordRequired bool   `json:"passwordRequired,omitempty"`
	}
}

// ResolveDataRequest is the request for the JSON resolution endpoint used by
// the prompt page.
type ResolveDataRequest struct {
	ID string `doc:"The short identifier" example:"LjjdON" path:"id"`
}

// ResolveDataResponse is the envelope consumed by the front end: exactly one
// of result or error is present.
type ResolveDataResponse struct {
	Status int
	Body   struct {
		Result *LinkView `json:"result,omitempty"`
		Error  *URLError `json:"error,omitempty"`
	}
}

// VerifyPasswordRequest carries a submitted credential for a gated link.
type VerifyPasswordRequest struct {
	Body struct {
		ID       string `doc:"The short identifier"  json:"id"       minLength:"1"`
		Password string `doc:"The password to check" json:"password"`
	}
}

// VerifyPasswordResponse carries the destination on success or the
// user-safe error on denial.
type VerifyPasswordResponse struct {
	Status int
	Body   struct {
		Destination string `json:"destination,omitempty"`
		Error       string `json:"error,omitempty"`
	}
}

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		URL          string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
		SelfDestruct string `doc:"Optional RFC 3339 expiry timestamp"                              json:"self_destruct,omitempty"`
		MaxPageHits  int64  `doc:"Optional hit ceiling, 0 means unlimited"                         json:"max_page_hits,omitempty" minimum:"0"`
		Password     string `doc:"Optional password gating the link"                               json:"password,omitempty"`
	}
}

// CreateShortURLResponse is the response for a successfully created short URL.
type CreateShortURLResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Result *LinkView `json:"result"`
	}
}

// DeleteURLRequest identifies the link to delete.
type DeleteURLRequest struct {
	ID string `doc:"The short identifier" query:"id" required:"true"`
}

// DeleteURLResponse confirms a deletion.
type DeleteURLResponse struct {
	Body struct {
		ID      string `json:"id"`
		Deleted bool   `json:"deleted"`
	}
}

// ListURLsResponse lists the links created under the caller's session.
type ListURLsResponse struct {
	Body struct {
		Result []LinkView `json:"result"`
	}
}

// newLinkView builds the outward shape of a record.
func newLinkView(rec *shortlink.Record, baseURL string, includeDestination bool) *LinkView {
	view := &LinkView{
		ID:               rec.ID,
		URL:              baseURL + "/" + rec.ID,
		DateCreated:      rec.DateCreated,
		SelfDestruct:     rec.SelfDestruct,
		MaxPageHits:      rec.MaxPageHits,
		PageHits:         rec.PageHits,
		PasswordRequired: rec.Gated(),
	}

	if includeDestination {
		view.Destination = rec.Destination
	}

	return view
}
