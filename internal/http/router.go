package http

import (
	"log/slog"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/spendwise/internal/http/analytics"
	"github.com/MrJamesThe3rd/spendwise/internal/http/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/http/export"
	"github.com/MrJamesThe3rd/spendwise/internal/http/importcsv"
	"github.com/MrJamesThe3rd/spendwise/internal/http/rule"
	"github.com/MrJamesThe3rd/spendwise/internal/http/seed"
	"github.com/MrJamesThe3rd/spendwise/internal/http/transaction"
)

type Options struct {
	CORSOrigins []string
	RateLimit   rate.Limit
	Burst       int
}

type Handlers struct {
	Transactions *transaction.Handler
	Budgets      *budget.Handler
	Analytics    *analytics.Handler
	Import       *importcsv.Handler
	Rules        *rule.Handler
	Export       *export.Handler
	Seed         *seed.Handler
}

func New(opts Options, v1 Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Export-Count"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(rateLimit(rate.NewLimiter(opts.RateLimit, opts.Burst)))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Transactions.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Budgets.Routes(r)
		})

		r.Route("/rules", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Rules.Routes(r)
		})

		r.Route("/analytics", v1.Analytics.Routes)
		r.Route("/import", v1.Import.Routes)
		r.Route("/export", v1.Export.Routes)
		r.Route("/seed", v1.Seed.Routes)
	})

	return router
}

// rateLimit rejects requests once the shared limiter runs dry.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.Warn("rate limit exceeded", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
