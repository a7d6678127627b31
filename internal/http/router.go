package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lehrbaum/firefly/internal/http/amount"
	"github.com/lehrbaum/firefly/internal/http/locale"
	"github.com/lehrbaum/firefly/internal/http/statement"
)

type Options struct {
	AllowedOrigins []string
	// AuthSecret enables bearer authentication on every API route when set.
	AuthSecret string
}

func New(
	opts Options,
	amountsV1 *amount.Handler,
	localesV1 *locale.Handler,
	statementsV1 *statement.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		if opts.AuthSecret != "" {
			r.Use(RequireBearer([]byte(opts.AuthSecret)))
		}

		r.Route("/amounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			amountsV1.Routes(r)
		})

		r.Route("/locales", localesV1.Routes)

		r.Route("/statements", statementsV1.Routes)
	})

	return router
}
