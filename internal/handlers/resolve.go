package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/XurifyTeine/url-shortener/internal/resolver"
	"github.com/XurifyTeine/url-shortener/internal/shortlink"
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// notFoundMessage is shown for unknown and expired links alike, so an
// expired link is indistinguishable from one that never existed.
const notFoundMessage = "This URL is invalid or does not contain an existing redirect URL"

// ResolveHandler serves the resolution surface: the redirect route, the JSON
// resolution endpoint behind the prompt page, and password verification.
type ResolveHandler struct {
	resolver *resolver.Resolver
	logger   *zap.Logger
}

// NewResolveHandler creates a new resolution handler.
func NewResolveHandler(res *resolver.Resolver, logger *zap.Logger) *ResolveHandler {
	return &ResolveHandler{
		resolver: res,
		logger:   logger,
	}
}

// Redirect handles GET /{id}. Active links answer 302 with a Location
// header; gated links answer 200 with the prompt payload; everything else is
// a 404.
func (h *ResolveHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	// Reserved routes and malformed segments never reach the backend.
	id := shortlink.ExtractID("/" + req.ID)
	if id == "" {
		return nil, huma.Error404NotFound(notFoundMessage)
	}

	switch outcome := h.resolver.Resolve(ctx, id).(type) {
	case shortlink.Redirect:
		resp := &RedirectResponse{
			// 302, not 301: expiring and hit-limited links must not be
			// permanently cached by browsers or intermediaries.
			Status: http.StatusFound,
		}
		resp.Headers.Location = outcome.Destination

		return resp, nil

	case shortlink.PasswordRequired:
		resp := &RedirectResponse{Status: http.StatusOK}
		resp.Body.ID = outcome.ID
		resp.Body.PasswordRequired = true

		return resp, nil

	case shortlink.NotFound:
		return nil, huma.Error404NotFound(notFoundMessage)

	default:
		return nil, huma.Error404NotFound(notFoundMessage)
	}
}

// ResolveData handles GET /api/urls/{id}, the JSON endpoint the prompt page
// polls. The envelope carries either a result or an error, never both, and
// never the password hash.
func (h *ResolveHandler) ResolveData(ctx context.Context, req *ResolveDataRequest) (*ResolveDataResponse, error) {
	resp := &ResolveDataResponse{}

	switch outcome := h.resolver.Resolve(ctx, req.ID).(type) {
	case shortlink.Redirect:
		resp.Status = http.StatusOK
		resp.Body.Result = &LinkView{ID: req.ID, Destination: outcome.Destination}

	case shortlink.PasswordRequired:
		resp.Status = http.StatusOK
		resp.Body.Result = &LinkView{ID: outcome.ID, PasswordRequired: true}

	default:
		resp.Status = http.StatusNotFound
		resp.Body.Error = &URLError{
			Message:   notFoundMessage,
			ErrorCode: http.StatusNotFound,
		}
	}

	return resp, nil
}

// VerifyPassword handles POST /api/verify-password. Expiry is rechecked
// before the credential, so a link that expired after its prompt rendered is
// refused as not found rather than re-prompting.
func (h *ResolveHandler) VerifyPassword(ctx context.Context, req *VerifyPasswordRequest) (*VerifyPasswordResponse, error) {
	destination, err := h.resolver.VerifyPassword(ctx, req.Body.ID, req.Body.Password)
	if err != nil {
		if errors.Is(err, resolver.ErrWrongPassword) {
			resp := &VerifyPasswordResponse{Status: http.StatusUnauthorized}
			resp.Body.Error = "Wrong password"

			return resp, nil
		}

		// Unknown, expired, and backend-failure cases all collapse to the
		// same not-found the redirect route produces.
		return nil, huma.Error404NotFound(notFoundMessage)
	}

	resp := &VerifyPasswordResponse{Status: http.StatusOK}
	resp.Body.Destination = destination

	return resp, nil
}
