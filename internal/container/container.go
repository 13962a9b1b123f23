package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/XurifyTeine/url-shortener/internal/accounting"
	"github.com/XurifyTeine/url-shortener/internal/backend"
	"github.com/XurifyTeine/url-shortener/internal/handlers"
	"github.com/XurifyTeine/url-shortener/internal/health"
	"github.com/XurifyTeine/url-shortener/internal/messaging"
	"github.com/XurifyTeine/url-shortener/internal/middleware"
	"github.com/XurifyTeine/url-shortener/internal/ratelimit"
	"github.com/XurifyTeine/url-shortener/internal/resolver"
	"github.com/XurifyTeine/url-shortener/internal/store"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options configures both binaries. humacli fills it from flags and
// SERVICE_* environment variables.
type Options struct {
	Port          int    `default:"8888"            help:"Port to listen on"                                              short:"p"`
	PublicURL     string `default:""                help:"Public base URL for generated short links"`
	BackendURL    string `default:""                help:"URL store base URL; empty runs the in-memory store"`
	BackendAPIKey string `default:""                help:"API key for protected URL store endpoints"`
	CodeLength    int    `default:"6"               help:"Length of generated short identifiers"                          short:"c"`
	RedisAddr     string `default:"localhost:6379"  help:"Redis server address"                                           short:"r"`
	PostgresURL   string `default:""                help:"Postgres connection string for the visit archive; empty disables archiving"`
	LogFormat     string `default:"console"         help:"Log format: console or json"`
}

// BaseURL returns the base URL advertised in created short links.
func (o *Options) BaseURL() string {
	if o.PublicURL != "" {
		return o.PublicURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client used by the rate limiter and
// the event stream transport.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the visit archive. Without a Postgres URL the
// archive is a no-op and hit accounting still reaches the URL store.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (accounting.VisitStore, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if options.PostgresURL == "" {
			return accounting.NewNoopVisitStore(logger), nil
		}

		pool, err := pgxpool.New(context.Background(), options.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		return store.NewPostgresVisitStore(pool), nil
	})
}

// BackendPackage provides the URL store client. Without a backend URL the
// gateway runs self-contained on the in-memory store, which is enough for
// local development.
func BackendPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (backend.Service, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if options.BackendURL == "" {
			logger.Info("no backend configured, using in-memory store")

			mem, err := backend.NewMemory(options.CodeLength)
			if err != nil {
				return nil, err
			}

			return mem, nil
		}

		httpClient := &http.Client{Timeout: 5 * time.Second}

		return backend.NewClient(options.BackendURL, options.BackendAPIKey, httpClient, logger), nil
	})
}

// RateLimitPackage provides the policy limiter backed by Redis, so limits
// hold across gateway replicas.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		client := do.MustInvoke[*redis.Client](i)

		return ratelimit.NewPolicyLimiter(store.NewRateLimitRedisStore(client), ratelimit.NewDefaultPolicy()), nil
	})
}

// PublisherGroupPackage provides the visit event publisher over Redis
// Streams, plus the typed publish function the resolver uses.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, fmt.Errorf("creating stream publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[accounting.LinkVisitedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[accounting.LinkVisitedEvent](group.Publisher(), accounting.TopicLinkVisited), nil
	})
}

// ConsumerGroupPackage provides the consumer binary's worker group: one
// consumer on the visit topic feeding the accounting reporter.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		service := do.MustInvoke[backend.Service](i)
		visits := do.MustInvoke[accounting.VisitStore](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "accounting",
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, fmt.Errorf("creating stream subscriber: %w", err)
		}

		reporter := accounting.NewReporter(service, visits, logger)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, accounting.TopicLinkVisited, reporter.Handle, logger))

		return group, nil
	})
}

// HTTPPackage provides the router and the API with all routes and middleware
// registered. Invoking huma.API wires the whole HTTP surface.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		service := do.MustInvoke[backend.Service](i)
		limiter := do.MustInvoke[*ratelimit.PolicyLimiter](i)
		redisClient := do.MustInvoke[*redis.Client](i)
		publishVisit := do.MustInvoke[messaging.Publish[accounting.LinkVisitedEvent]](i)

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))

		// Order matters: metadata and session context must exist before
		// handlers run; rate limiting goes first so rejected requests do
		// not mint sessions.
		api.UseMiddleware(
			middleware.PolicyRateLimiter(api, limiter, ratelimit.NewOperationScopeResolver(), logger),
			middleware.CollectRequestMeta(api),
			middleware.SessionCookie(api, service, logger),
		)

		res := resolver.New(service, publishVisit, logger)

		handlers.RegisterRoutes(api,
			handlers.NewResolveHandler(res, logger),
			handlers.NewLinkHandler(service, options.BaseURL(), logger),
		)

		health.RegisterRoutes(api, health.NewHandler(
			health.NewRedisChecker(redisClient),
			health.NewBackendChecker(service.Healthz),
		))

		return api, nil
	})
}
