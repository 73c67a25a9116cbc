package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/talx-hub/points-ledger/internal/api/middlewares"
)

const contentTypeJSON = "application/json"

type CustomRouter struct {
	router  *chi.Mux
	logger  *slog.Logger
	secret  []byte
	origins []string
}

func New(secret []byte, origins []string, log *slog.Logger) *CustomRouter {
	router := &CustomRouter{
		router:  chi.NewRouter(),
		logger:  log,
		secret:  secret,
		origins: origins,
	}

	return router
}

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Earn(w http.ResponseWriter, r *http.Request)
	Burn(w http.ResponseWriter, r *http.Request)
	ListTransactions(w http.ResponseWriter, r *http.Request)
	PessimisticEarn(w http.ResponseWriter, r *http.Request)
	PessimisticBurn(w http.ResponseWriter, r *http.Request)
}

type RuleHandler interface {
	ListRules(w http.ResponseWriter, r *http.Request)
	GetRule(w http.ResponseWriter, r *http.Request)
	CreateRule(w http.ResponseWriter, r *http.Request)
	UpdateRule(w http.ResponseWriter, r *http.Request)
	DeleteRule(w http.ResponseWriter, r *http.Request)
	ListServices(w http.ResponseWriter, r *http.Request)
	GetService(w http.ResponseWriter, r *http.Request)
	CreateService(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	GetKPIs(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Handler interface {
	AuthHandler
	WalletHandler
	RuleHandler
	AdminHandler
}

// Metrics instruments every request and serves the scrape endpoint.
type Metrics interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

func (cr *CustomRouter) SetRouter(h Handler, m Metrics) {
	cr.router.Use(
		middleware.RequestID,
		middlewares.RequestLogger(cr.logger),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   cr.origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		m.Middleware,
	)

	cr.router.Route("/api", func(r chi.Router) {
		r.With(middleware.AllowContentType(contentTypeJSON)).
			Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Authentication(cr.secret, cr.logger))

			r.Route("/wallets", func(r chi.Router) {
				r.Get("/balance", h.GetBalance)
				r.Get("/transactions", h.ListTransactions)
				r.Group(func(r chi.Router) {
					r.Use(middleware.AllowContentType(contentTypeJSON))
					r.Post("/earn", h.Earn)
					r.Post("/burn", h.Burn)
				})
			})

			r.Route("/pessimistic/wallets/{userId}", func(r chi.Router) {
				r.Use(middleware.AllowContentType(contentTypeJSON))
				r.Post("/earn", h.PessimisticEarn)
				r.Post("/burn", h.PessimisticBurn)
			})

			r.Get("/admin/kpis", h.GetKPIs)

			r.Route("/rules", func(r chi.Router) {
				r.Get("/", h.ListRules)
				r.With(middleware.AllowContentType(contentTypeJSON)).
					Post("/", h.CreateRule)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetRule)
					r.With(middleware.AllowContentType(contentTypeJSON)).
						Put("/", h.UpdateRule)
					r.Delete("/", h.DeleteRule)
				})
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", h.ListServices)
				r.With(middleware.AllowContentType(contentTypeJSON)).
					Post("/", h.CreateService)
				r.Get("/{id}", h.GetService)
			})
		})
	})
	cr.router.Get("/ping", h.Ping)
	cr.router.Method(http.MethodGet, "/metrics", m.Handler())

	cr.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w,
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed)
	})
}

func (cr *CustomRouter) GetRouter() *chi.Mux {
	return cr.router
}
