package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for checking a dependency's health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to the Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// BackendChecker adapts the URL store's liveness probe to Checker.
type BackendChecker struct {
	healthz func(ctx context.Context) error
}

// NewBackendChecker creates a health checker from the store's Healthz probe.
func NewBackendChecker(healthz func(ctx context.Context) error) *BackendChecker {
	return &BackendChecker{healthz: healthz}
}

// Ping probes the URL store.
func (b *BackendChecker) Ping(ctx context.Context) error {
	return b.healthz(ctx)
}

// Handler handles health check operations.
type Handler struct {
	redis   Checker
	backend Checker
}

// NewHandler creates a new health handler.
func NewHandler(redis, backend Checker) *Handler {
	return &Handler{
		redis:   redis,
		backend: backend,
	}
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status  string `json:"status"`
		Redis   string `json:"redis"`
		Backend string `json:"backend"`
	}
}

// Check reports the gateway's health and that of its dependencies. A
// degraded backend means resolution is failing closed, so it degrades the
// overall status too.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.redis.Ping(ctx); err != nil {
		resp.Body.Redis = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Redis = "healthy"
	}

	if err := h.backend.Ping(ctx); err != nil {
		resp.Body.Backend = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Backend = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
