package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/service"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/store"
	"github.com/aussiebroadwan/gatepass/pkg/httpx"
	"github.com/aussiebroadwan/gatepass/pkg/jwtx"
	"github.com/aussiebroadwan/gatepass/pkg/slogx"

	_ "github.com/aussiebroadwan/gatepass/api/gatepass" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	// verifier checks station tokens. Nil leaves the API open, which is
	// how a single-laptop door runs.
	verifier     jwtx.Verifier
	publicURL    string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	Registry *service.Registry
}

func NewRouter(
	verifier jwtx.Verifier,
	publicURL, buildVersion string,
	st store.Store,
	registry *service.Registry,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		publicURL:    publicURL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		Registry:     registry,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCodes()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatepass Invitation Service API
//	@version		0.1.0
//	@description	Issues one-time invitation codes rendered as QR images and validates them at the door. Each issued code grants entry exactly once.
//	@description
//	@description				When the server is started with a signing key every endpoint except health checks requires a station token.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/gatepass
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS256 station token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured applies station authentication and scope checks when a verifier
// is configured, followed by the rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig, scopes ...string) http.Handler {
	if r.verifier == nil {
		return httpx.Chain(h, httpx.RateLimitByIP(limit))
	}
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(scopes...),
		httpx.RateLimitByStation(limit),
	)
}

func (r *Router) registerCodes() {
	issue := &IssueHandler{Registry: r.Registry, PublicURL: r.publicURL}
	batch := &IssueBatchHandler{Registry: r.Registry, PublicURL: r.publicURL}
	redeem := &RedeemHandler{Registry: r.Registry}
	codes := &CodesHandler{Registry: r.Registry, PublicURL: r.publicURL}
	qr := &QRHandler{Registry: r.Registry}

	// Issuing desk
	r.Mux.Handle("POST /codes", r.secured(issue, httpx.IssueLimit, domain.ScopeIssue))
	r.Mux.Handle("POST /codes/batch", r.secured(batch, httpx.IssueLimit, domain.ScopeIssue))
	r.Mux.Handle("GET /codes", r.secured(http.HandlerFunc(codes.HandleList), httpx.IssueLimit, domain.ScopeIssue))
	r.Mux.Handle("GET /codes/{code}", r.secured(http.HandlerFunc(codes.HandleGet), httpx.IssueLimit, domain.ScopeIssue))
	r.Mux.Handle("GET /codes/{code}/qr.png", r.secured(qr, httpx.IssueLimit, domain.ScopeIssue))
	r.Mux.Handle("GET /codes/{code}/scans", r.secured(http.HandlerFunc(codes.HandleScans), httpx.IssueLimit, domain.ScopeIssue))

	// Door
	r.Mux.Handle("POST /codes/{code}/redeem", r.secured(redeem, httpx.RedeemLimit, domain.ScopeRedeem))

	r.Mux.Handle("GET /stats", r.secured(StatsHandler(r.Registry), httpx.RedeemLimit, domain.ScopeIssue, domain.ScopeRedeem))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.HealthLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.HealthLimit),
		),
	)
}
