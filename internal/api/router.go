package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/citynights/server/internal/api/handlers"
	"github.com/citynights/server/internal/api/middleware"
	"github.com/citynights/server/internal/auth"
	"github.com/citynights/server/internal/config"
	"github.com/citynights/server/internal/domain/users"
	"github.com/citynights/server/internal/domain/venues"
	"github.com/citynights/server/internal/metrics"
)

// Deps carries the wired services the router exposes over HTTP.
type Deps struct {
	Pool   *pgxpool.Pool
	Venues *venues.Service
	Users  *users.Service
	JWT    *auth.JWTManager

	Version   string
	GitCommit string
	BuildDate string
}

func NewRouter(cfg config.Config, logger zerolog.Logger, deps Deps) http.Handler {
	venuesHandler := handlers.NewVenuesHandler(deps.Venues, cfg.Environment)
	authHandler := handlers.NewAuthHandler(deps.Users, cfg.Environment)

	jwtAuth := middleware.JWTAuth(deps.JWT, cfg.Environment)
	requireEditor := middleware.RequireRole(cfg.Environment, auth.RoleAdmin, auth.RoleEditor)
	requireAdmin := middleware.RequireRole(cfg.Environment, auth.RoleAdmin)
	editorTier := middleware.WithRateLimitTierHandler(middleware.TierEditor)
	loginTier := middleware.WithRateLimitTierHandler(middleware.TierLogin)
	publicSize := middleware.PublicRequestSize()
	editorSize := middleware.EditorRequestSize()

	// One shared limiter store; the tier wrapper must run before it so the
	// limiter sees the route's tier.
	rateLimit := middleware.RateLimit(cfg.RateLimit)

	readVenue := func(h http.HandlerFunc) http.Handler {
		return rateLimit(jwtAuth(h))
	}
	writeVenue := func(h http.HandlerFunc) http.Handler {
		return editorTier(rateLimit(editorSize(jwtAuth(requireEditor(h)))))
	}
	adminVenue := func(h http.HandlerFunc) http.Handler {
		return editorTier(rateLimit(editorSize(jwtAuth(requireAdmin(h)))))
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(deps.Pool))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.Handle("/version", VersionHandler(deps.Version, deps.GitCommit, deps.BuildDate))
	mux.Handle("/api/v1/openapi.json", OpenAPIHandler())

	mux.Handle("/api/v1/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: loginTier(rateLimit(publicSize(http.HandlerFunc(authHandler.Login)))),
	}))

	mux.Handle("/api/v1/venues", methodMux(map[string]http.Handler{
		http.MethodGet:  readVenue(venuesHandler.List),
		http.MethodPost: writeVenue(venuesHandler.Create),
	}))
	mux.Handle("/api/v1/venues/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    readVenue(venuesHandler.Get),
		http.MethodPatch:  writeVenue(venuesHandler.Update),
		http.MethodDelete: adminVenue(venuesHandler.Delete),
	}))
	mux.Handle("/api/v1/venues/{id}/facebook-events", methodMux(map[string]http.Handler{
		http.MethodPut: writeVenue(venuesHandler.SetFacebookEvents),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	if cfg.Tracing.Enabled {
		handler = middleware.Tracing(handler)
	}
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := routes[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(routes))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(routes map[string]http.Handler) string {
	methods := make([]string, 0, len(routes))
	for method := range routes {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
