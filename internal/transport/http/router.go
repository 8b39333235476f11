// Package httptransport assembles the HTTP surface: middleware chain, domain
// routes and operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	decisionhandler "carebase/internal/decision/handler"
	integrationhandler "carebase/internal/integration/handler"
	knowledgehandler "carebase/internal/knowledge/handler"
	patienthandler "carebase/internal/patient/handler"
	"carebase/internal/platform/config"
	"carebase/internal/platform/metrics"
	platformredis "carebase/internal/platform/redis"
	workflowhandler "carebase/internal/workflow/handler"
	"carebase/pkg/platform/middleware/auth"
	"carebase/pkg/platform/middleware/metadata"
	"carebase/pkg/platform/middleware/orgscope"
	"carebase/pkg/platform/middleware/ratelimit"
	"carebase/pkg/platform/middleware/requestid"
	"carebase/pkg/platform/middleware/tracing"
	"carebase/pkg/platform/token"
)

// Registrar mounts a domain's routes on a router.
type Registrar interface {
	Register(r chi.Router)
}

// Dependencies carries everything the router needs; main assembles it.
type Dependencies struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Redis   *platformredis.Client
	Tokens  *token.Service

	Patient     *patienthandler.Handler
	Workflow    *workflowhandler.Handler
	Decision    *decisionhandler.Handler
	Knowledge   *knowledgehandler.Handler
	Integration *integrationhandler.Handler
}

// subjectValidator narrows the token service to the middleware contract.
type subjectValidator struct {
	tokens *token.Service
}

func (v subjectValidator) Validate(tokenString string) (string, error) {
	claims, err := v.tokens.Validate(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// NewRouter wires the middleware chain and all domain routes. Operational
// endpoints sit outside the tenant-scoped chain.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth(deps))
	r.Handle("/metrics", promhttp.Handler())

	var redisClient *redis.Client
	if deps.Redis != nil {
		redisClient = deps.Redis.Client
	}
	limiter := ratelimit.New(redisClient, deps.Logger,
		deps.Config.RateLimit.RequestsPerWindow, deps.Config.RateLimit.Window)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(requestid.Middleware)
		api.Use(metadata.ClientMetadata)
		api.Use(tracing.Middleware)
		api.Use(deps.Metrics.Middleware)
		if !deps.Config.Server.AuthDisabled {
			api.Use(auth.RequireBearer(subjectValidator{tokens: deps.Tokens}, deps.Logger))
		}
		api.Use(orgscope.Require(deps.Logger))
		api.Use(limiter.Handler)

		for _, registrar := range []Registrar{
			deps.Patient,
			deps.Workflow,
			deps.Decision,
			deps.Knowledge,
			deps.Integration,
		} {
			registrar.Register(api)
		}
	})

	return r
}

func handleHealth(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Redis != nil {
			if err := deps.Redis.Health(r.Context()); err != nil {
				deps.Logger.WarnContext(r.Context(), "health check degraded", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("degraded"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
