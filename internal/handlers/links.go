package handlers

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/XurifyTeine/url-shortener/internal/backend"
	"github.com/XurifyTeine/url-shortener/internal/middleware"
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// urlPattern matches the destination URLs this service accepts.
var urlPattern = regexp.MustCompile(
	`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()!@:%_+.~#?&/=]*)$`,
)

// LinkHandler serves link management: creation, deletion, and session-scoped
// listing. All operations proxy to the URL store; the session token from the
// request cookie scopes ownership.
type LinkHandler struct {
	backend backend.Service
	baseURL string
	logger  *zap.Logger
}

// NewLinkHandler creates a new link management handler.
func NewLinkHandler(store backend.Service, baseURL string, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{
		backend: store,
		baseURL: baseURL,
		logger:  logger,
	}
}

// CreateShortURL handles POST /api/create-short-url.
func (h *LinkHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	if !urlPattern.MatchString(req.Body.URL) {
		return nil, huma.Error400BadRequest("invalid destination url")
	}

	if req.Body.SelfDestruct != "" {
		at, err := time.Parse(time.RFC3339, req.Body.SelfDestruct)
		if err != nil {
			return nil, huma.Error400BadRequest("self_destruct must be an RFC 3339 timestamp")
		}

		if !at.After(time.Now()) {
			return nil, huma.Error400BadRequest("self_destruct must be in the future")
		}
	}

	record, err := h.backend.CreateShortURL(ctx, backend.CreateParams{
		Destination:  req.Body.URL,
		SelfDestruct: req.Body.SelfDestruct,
		MaxPageHits:  req.Body.MaxPageHits,
		Password:     req.Body.Password,
		SessionToken: middleware.SessionTokenFromContext(ctx),
	})
	if err != nil {
		h.logger.Error("failed to create short url", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create short url")
	}

	view := newLinkView(record, h.baseURL, true)

	resp := &CreateShortURLResponse{}
	resp.Headers.Location = view.URL
	resp.Body.Result = view

	return resp, nil
}

// DeleteURL handles DELETE /api/delete-url. The backend only honors the
// deletion when the session token matches the record's owner.
func (h *LinkHandler) DeleteURL(ctx context.Context, req *DeleteURLRequest) (*DeleteURLResponse, error) {
	sessionToken := middleware.SessionTokenFromContext(ctx)

	if err := h.backend.DeleteURL(ctx, req.ID, sessionToken); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, huma.Error404NotFound(notFoundMessage)
		}

		h.logger.Error("failed to delete short url",
			zap.String("id", req.ID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to delete short url")
	}

	resp := &DeleteURLResponse{}
	resp.Body.ID = req.ID
	resp.Body.Deleted = true

	return resp, nil
}

// ListURLs handles GET /api/urls, returning the caller's own links. A
// sessionless visitor owns nothing and gets an empty list.
func (h *LinkHandler) ListURLs(ctx context.Context, _ *struct{}) (*ListURLsResponse, error) {
	resp := &ListURLsResponse{}
	resp.Body.Result = []LinkView{}

	sessionToken := middleware.SessionTokenFromContext(ctx)
	if sessionToken == "" {
		return resp, nil
	}

	records, err := h.backend.ListURLs(ctx, sessionToken)
	if err != nil {
		h.logger.Error("failed to list short urls", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list short urls")
	}

	for _, record := range records {
		resp.Body.Result = append(resp.Body.Result, *newLinkView(record, h.baseURL, true))
	}

	return resp, nil
}
