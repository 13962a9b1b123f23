package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the visitor's opaque session
// token. Links created under a token can later be listed and deleted by the
// same visitor without an account.
const SessionCookieName = "session_token"

type sessionTokenKey struct{}

// ContextWithSessionToken stores the visitor's session token in the context.
func ContextWithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenKey{}, token)
}

// SessionTokenFromContext returns the visitor's session token, or "" when
// the visitor is browsing sessionless.
func SessionTokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionTokenKey{}).(string); ok {
		return v
	}

	return ""
}

// SessionMinter requests a fresh session cookie from the URL store.
type SessionMinter interface {
	MintSession(ctx context.Context) (key, value string, err error)
}

// SessionCookie guarantees every visitor carries a session token. An
// existing cookie is preserved and forwarded untouched; otherwise a token is
// minted once and set, so the mint round-trip happens at most once per
// browser. When minting fails the request proceeds sessionless: links
// created during it simply will not be attributable to a session.
func SessionCookie(_ huma.API, minter SessionMinter, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if token := cookieValue(ctx.Header("Cookie"), SessionCookieName); token != "" {
			newCtx := ContextWithSessionToken(ctx.Context(), token)
			next(huma.WithContext(ctx, newCtx))

			return
		}

		key, value, err := minter.MintSession(ctx.Context())
		if err != nil {
			logger.Warn("failed to mint session token, continuing sessionless",
				zap.Error(err),
			)
			next(ctx)

			return
		}

		cookie := &http.Cookie{
			Name:     key,
			Value:    value,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		ctx.AppendHeader("Set-Cookie", cookie.String())

		newCtx := ContextWithSessionToken(ctx.Context(), value)
		next(huma.WithContext(ctx, newCtx))
	}
}

// cookieValue extracts a cookie value from a raw Cookie header.
func cookieValue(header, name string) string {
	for _, part := range strings.Split(header, ";") {
		cookieName, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && cookieName == name {
			return value
		}
	}

	return ""
}
