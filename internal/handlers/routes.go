package handlers

import (
	"net/http"
	"time"

	"github.com/XurifyTeine/url-shortener/internal/ratelimit"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the resolution and link management routes with
// per-endpoint rate limit configuration.
func RegisterRoutes(api huma.API, resolve *ResolveHandler, links *LinkHandler) {
	// GET /{id} - high-traffic redirect route, relaxed limits
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{id}",
		Summary:     "Resolve a short link",
		Description: "Redirects to the destination URL, or returns the password prompt payload for gated links.",
		Tags:        []string{"Resolution"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, resolve.Redirect)

	// GET /api/urls/{id} - JSON resolution endpoint for the prompt page
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/api/urls/{id}",
		Summary:     "Resolve a short link as JSON",
		Description: "Returns the resolution envelope consumed by the front end.",
		Tags:        []string{"Resolution"},
	}, resolve.ResolveData)

	// POST /api/verify-password - strict limits against password guessing
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/api/verify-password",
		Summary:     "Verify a link password",
		Description: "Checks a submitted password for a gated link and returns the destination on success.",
		Tags:        []string{"Resolution"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 5},
					{Window: time.Hour, Max: 30},
				},
			},
		},
	}, resolve.VerifyPassword)

	// POST /api/create-short-url - stricter write limits
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/api/create-short-url",
		Summary:     "Create a short URL",
		Description: "Creates a shortened URL with optional expiry, hit limit, and password.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 100},
					{Window: 24 * time.Hour, Max: 500},
				},
			},
		},
	}, links.CreateShortURL)

	// DELETE /api/delete-url
	huma.Register(api, huma.Operation{
		Method:      http.MethodDelete,
		Path:        "/api/delete-url",
		Summary:     "Delete a short URL",
		Description: "Deletes a short URL owned by the caller's session.",
		Tags:        []string{"Links"},
	}, links.DeleteURL)

	// GET /api/urls - session-scoped listing
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/api/urls",
		Summary:     "List your short URLs",
		Description: "Lists the short URLs created under the caller's session.",
		Tags:        []string{"Links"},
	}, links.ListURLs)
}
