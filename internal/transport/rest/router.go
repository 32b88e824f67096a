package rest

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mailtriage/triagem-backend/internal/config"
	"github.com/mailtriage/triagem-backend/internal/transport/middleware"
)

// tokenValidator resolves bearer tokens into a profile identity.
type tokenValidator interface {
	ValidateToken(token string) (uuid.UUID, string, error)
}

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Logger    *slog.Logger
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Limiter   *middleware.RateLimiter
	Validator tokenValidator

	Auth      *AuthHandler
	Emails    *EmailHandler
	Dashboard *DashboardHandler
	Locations *LocationHandler
	Webhook   *WebhookHandler
	Health    *HealthHandler
}

// NewRouter builds the HTTP handler tree. Routes under /api require an
// authenticated profile; /auth, /webhook and /health are open (the webhook
// is guarded by its own shared secret).
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", deps.Health.Health)
	mux.HandleFunc("GET /health/live", deps.Health.Live)
	mux.HandleFunc("GET /health/ready", deps.Health.Ready)

	authLimit := passthrough
	webhookLimit := passthrough
	if deps.Limiter != nil {
		authLimit = deps.Limiter.Limit(deps.RateLimit.AuthPerMinute)
		webhookLimit = deps.Limiter.Limit(deps.RateLimit.WebhookPerMinute)
	}

	mux.Handle("POST /auth/register", authLimit(http.HandlerFunc(deps.Auth.Register)))
	mux.Handle("POST /auth/login", authLimit(http.HandlerFunc(deps.Auth.Login)))

	mux.Handle("POST /webhook/inbound", webhookLimit(http.HandlerFunc(deps.Webhook.Inbound)))

	protected := middleware.RequireAuth()
	api := func(h http.HandlerFunc) http.Handler { return protected(h) }

	mux.Handle("GET /api/me", api(deps.Auth.Me))
	mux.Handle("PATCH /api/me", api(deps.Auth.UpdateMe))

	mux.Handle("GET /api/emails", api(deps.Emails.List))
	mux.Handle("POST /api/emails", api(deps.Emails.Create))
	mux.Handle("GET /api/emails/export", api(deps.Emails.Export))
	mux.Handle("POST /api/emails/classify", api(deps.Emails.Classify))
	mux.Handle("GET /api/emails/{id}", api(deps.Emails.Get))
	mux.Handle("PATCH /api/emails/{id}", api(deps.Emails.Update))
	mux.Handle("DELETE /api/emails/{id}", api(deps.Emails.Delete))

	mux.Handle("GET /api/dashboard/stats", api(deps.Dashboard.Stats))
	mux.Handle("GET /api/dashboard/by-state", api(deps.Dashboard.ByState))
	mux.Handle("GET /api/dashboard/top-recipients", api(deps.Dashboard.TopRecipients))
	mux.Handle("GET /api/dashboard/trend", api(deps.Dashboard.Trend))

	mux.Handle("GET /api/estados", api(deps.Locations.Estados))
	mux.Handle("GET /api/estados/{sigla}/municipios", api(deps.Locations.Municipios))

	base := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(deps.Logger),
		middleware.Logger(deps.Logger),
		middleware.CORS(deps.CORS),
		middleware.Auth(deps.Validator),
	)

	return base(mux)
}

func passthrough(next http.Handler) http.Handler { return next }
