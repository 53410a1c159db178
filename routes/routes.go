package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/trade-machine/docs"
	"github.com/Dosada05/trade-machine/handlers"
	"github.com/Dosada05/trade-machine/middleware"
)

const requestTimeout = 30 * time.Second

type Options struct {
	Logger             zerolog.Logger
	AllowedOrigins     []string
	ExposeErrorDetails bool
	// AdminAPIKey guards /api/admin. The routes are not mounted when empty.
	AdminAPIKey string
	Tokens      middleware.TokenParser
}

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Teams     *handlers.TeamHandler
	Users     *handlers.UserHandler
	Trades    *handlers.TradeHandler
	Admin     *handlers.AdminHandler
	WebSocket *handlers.WebSocketHandler
}

func SetupRoutes(router chi.Router, opts Options, h Handlers) {
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogging(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.ErrorDetails(opts.ExposeErrorDetails))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.AdminKeyHeader},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", h.Health.Health)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.Timeout(requestTimeout))

			r.Post("/auth/register", h.Auth.Register)
			r.Post("/auth/login", h.Auth.Login)

			if opts.AdminAPIKey != "" {
				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.RequireAdminKey(opts.AdminAPIKey))
					r.Post("/migrate", h.Admin.Migrate)
					r.Post("/seed", h.Admin.Seed)
				})
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.Tokens))

			// Upgraded connections outlive the request timeout.
			r.Get("/ws/trades", h.WebSocket.ServeTrades)

			r.Group(func(r chi.Router) {
				r.Use(chiMiddleware.Timeout(requestTimeout))

				r.Get("/auth/me", h.Auth.Me)
				r.Get("/dashboard", h.Users.Dashboard)
				r.Get("/users", h.Users.ListUsers)

				r.Route("/teams", func(r chi.Router) {
					r.Get("/", h.Teams.ListTeams)
					r.Get("/{teamID}/picks", h.Teams.GetTeamPicks)
				})

				r.Route("/trades", func(r chi.Router) {
					r.Get("/", h.Trades.ListTrades)
					r.Post("/", h.Trades.CreateTrade)
					r.Post("/evaluate", h.Trades.EvaluateTrade)
					r.Route("/{tradeID}", func(r chi.Router) {
						r.Get("/", h.Trades.GetTrade)
						r.Put("/", h.Trades.UpdateTrade)
						r.Delete("/", h.Trades.DeleteTrade)
						r.Post("/chat", h.Trades.ChatAboutTrade)
						r.Post("/export", h.Trades.ExportTrade)
					})
				})
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
