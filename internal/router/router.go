// Package router wires the HTTP surface: routes, CORS, compression,
// security headers, rate limits and metrics.
package router

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/corkboard-dev/corkboard/internal/middleware"
	"github.com/corkboard-dev/corkboard/internal/middleware/metrics"
	rl "github.com/corkboard-dev/corkboard/internal/middleware/ratelimiter"
	"github.com/corkboard-dev/corkboard/internal/setup"
)

// New builds the router. Rate limiters attached with .Use throttle every
// endpoint of that subrouter combined.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(handlers.CompressHandler)

	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	))

	// JSON API only, nothing should ever render or frame it
	apiCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, apiCSP))

	// Wildcard OPTIONS handler so preflight requests never 404
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Auth routes. Registration and login are brute-force targets.
	auth := v1.PathPrefix("/auth").Subrouter()

	authRegister := auth.NewRoute().Subrouter()
	authRegister.Use(mw.RateLimit(rl.New(1.0/10, 2, 1*time.Hour), mw.GetIP)) // 1 per 10s by IP
	authRegister.Use(mw.GlobalRateLimit(rl.Rps10()))
	authRegister.HandleFunc("/register", h.Register).Methods("POST")

	authLogin := auth.NewRoute().Subrouter()
	authLogin.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
	authLogin.Use(mw.GlobalRateLimit(rl.Rps100()))
	authLogin.HandleFunc("/login", h.Login).Methods("POST")

	auth.HandleFunc("/logout", h.Logout).Methods("POST")

	// Read side. Anonymous allowed, user context populated when present.
	read := v1.NewRoute().Subrouter()
	read.Use(authMw.OptionalAuth())
	read.Use(mw.RateLimit(rl.Rps100(), mw.GetIP))
	read.HandleFunc("/threads", h.ListThreads).Methods("GET")
	read.HandleFunc("/threads/{thread}", h.GetThread).Methods("GET")

	// Write side. Requires a session, keyed per user.
	loggedIn := v1.NewRoute().Subrouter()
	loggedIn.Use(authMw.NeedAuth())
	loggedIn.Use(mw.RateLimit(rl.Rps10(), mw.GetUserIdFromContext))

	loggedIn.HandleFunc("/threads", h.CreateThread).Methods("POST")
	loggedIn.HandleFunc("/threads/{thread}", h.UpdateThread).Methods("PUT")
	loggedIn.HandleFunc("/threads/{thread}", h.DeleteThread).Methods("DELETE")
	loggedIn.HandleFunc("/threads/{thread}/like", h.ToggleLike).Methods("POST")
	loggedIn.HandleFunc("/comments", h.CreateComment).Methods("POST")
	loggedIn.HandleFunc("/comments/{comment}", h.DeleteComment).Methods("DELETE")

	// Admin console routes
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(authMw.AdminOnly())
	admin.HandleFunc("/threads", h.AdminThreads).Methods("GET")
	admin.HandleFunc("/threads/{thread}", h.DeleteThread).Methods("DELETE")

	return r
}
